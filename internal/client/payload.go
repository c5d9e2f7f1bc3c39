package client

import (
	"strconv"
	"strings"
)

// Delimiter separates positional fields of mutating payloads.
const Delimiter = "$;"

// AddPayload joins an add request: body, estimation, deadline month, day, year.
// "0" in all three deadline fields means no deadline.
func AddPayload(encodedBody string, estimationSeconds int, month, day, year string) string {
	return strings.Join([]string{encodedBody, strconv.Itoa(estimationSeconds), month, day, year}, Delimiter)
}

func UpdateRealSecondsPayload(uuid string, seconds int) string {
	return uuid + Delimiter + strconv.Itoa(seconds)
}

func RearrangePayload(source, destination string) string {
	return source + "," + destination
}
