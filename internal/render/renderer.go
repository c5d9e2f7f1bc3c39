// Package render turns backend payloads into page fragments and stores them in
// the Document.
package render

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"doneUI/internal/forecast"
	"doneUI/internal/gamification"
	"doneUI/internal/logger"
	"doneUI/internal/models/task"
	"doneUI/internal/modules"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Renderer struct {
	doc    *Document
	loader *modules.Loader
	page   *template.Template
	now    func() time.Time
	active func() string
}

type Option func(*Renderer)

func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// WithActiveTask lets the renderer mark the task whose timer is running.
func WithActiveTask(active func() string) Option {
	return func(r *Renderer) {
		r.active = active
	}
}

// WithPage parses the full page template from fsys.
func WithPage(fsys fs.FS, name string) Option {
	return func(r *Renderer) {
		r.page = template.Must(template.ParseFS(fsys, name))
	}
}

func NewRenderer(doc *Document, loader *modules.Loader, opts ...Option) *Renderer {
	r := &Renderer{
		doc:    doc,
		loader: loader,
		now:    time.Now,
		active: func() string { return "" },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Document() *Document {
	return r.doc
}

// Rendered describes what a task-list render produced.
type Rendered struct {
	Tasks   []task.Task
	Markers []time.Time
	Applied bool
}

// Tasks decodes a serialized task collection, orders it, interleaves forecast
// markers and replaces the task list container.
func (r *Renderer) Tasks(payload []byte, stamp uint64) (Rendered, error) {
	tasks, err := task.DecodeList(payload)
	if err != nil {
		return Rendered{}, fmt.Errorf("список задач: %w", err)
	}
	return r.TaskList(tasks, stamp)
}

// TaskList renders already decoded tasks. The slice is sorted in place.
func (r *Renderer) TaskList(tasks []task.Task, stamp uint64) (Rendered, error) {
	task.SortByOrder(tasks)

	entries := forecast.Build(tasks, r.now())
	html, err := r.taskList(entries)
	if err != nil {
		return Rendered{}, err
	}

	applied, err := r.doc.Replace(ContainerTasks, html, stamp)
	if err != nil {
		return Rendered{}, err
	}
	if !applied {
		logger.Debug("Render: устаревший ответ пропущен", zap.String("container", ContainerTasks), zap.Uint64("stamp", stamp))
	}
	return Rendered{Tasks: tasks, Markers: forecast.Markers(entries), Applied: applied}, nil
}

func (r *Renderer) taskList(entries []forecast.Entry) (string, error) {
	active := r.active()

	var b strings.Builder
	for _, e := range entries {
		var (
			out string
			err error
		)
		switch e.Kind {
		case forecast.KindMarker:
			out, err = r.loader.Render("forecast", map[string]string{"text": forecast.FormatMarker(e.Date)})
		case forecast.KindTask:
			out, err = r.loader.Render("task", taskValues(e.Task, e.Index, e.Task.UUID == active))
		}
		if err != nil {
			return "", fmt.Errorf("отрисовка списка: %w", err)
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

func taskValues(t task.Task, index int, running bool) map[string]string {
	readable := t.Readable()
	values := map[string]string{
		"uuid":           t.UUID,
		"order":          strconv.Itoa(t.Order),
		"index":          strconv.Itoa(index),
		"body":           t.Body,
		"estimated":      readable.Estimated,
		"real":           readable.Real,
		"deadline":       readable.Deadline,
		"deadline_class": "",
		"timer_action":   "start",
		"timer_state":    "",
		"timer_icon":     "▶",
	}
	if t.HasDeadline() {
		values["deadline_class"] = " task_has_deadline"
	}
	if running {
		values["timer_action"] = "stop"
		values["timer_state"] = "running"
		values["timer_icon"] = "⏸"
	}
	return values
}

// TodayResults renders the completed-today view.
func (r *Renderer) TodayResults(payload []byte, stamp uint64) (Rendered, error) {
	tasks, err := task.DecodeTodayResults(payload)
	if err != nil {
		return Rendered{}, fmt.Errorf("результаты дня: %w", err)
	}

	values := make([]map[string]string, 0, len(tasks))
	for _, t := range tasks {
		values = append(values, map[string]string{
			"uuid": t.UUID,
			"body": t.Body,
			"real": t.Readable().Real,
		})
	}
	html, err := r.loader.RenderEach("today", values)
	if err != nil {
		return Rendered{}, fmt.Errorf("отрисовка результатов дня: %w", err)
	}

	applied, err := r.doc.Replace(ContainerToday, html, stamp)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{Tasks: tasks, Applied: applied}, nil
}

// Points renders the level, score and progress panel.
func (r *Renderer) Points(g task.Gamification, soundEnabled bool, stamp uint64) error {
	p := gamification.ComputeProgress(g, r.now())

	progressText := fmt.Sprintf("%d points to next level", p.PointsNeeded)
	if p.DaysToNext > 0 {
		suffix := "s"
		if p.DaysToNext == 1 {
			suffix = ""
		}
		progressText += fmt.Sprintf(" (~%d day%s)", p.DaysToNext, suffix)
	}

	values := map[string]string{
		"level":         strconv.Itoa(p.Level.Number),
		"title":         p.Level.Title,
		"completed":     strconv.Itoa(g.CompletedTasks),
		"points":        groupThousands(g.TotalPoints),
		"percent":       strconv.Itoa(p.Percent),
		"progress_text": progressText,
		"sound_class":   "",
		"sound_icon":    "🔇",
	}
	if soundEnabled {
		values["sound_class"] = "enabled"
		values["sound_icon"] = "🔊"
	}

	html, err := r.loader.Render("points", values)
	if err != nil {
		return fmt.Errorf("отрисовка очков: %w", err)
	}
	_, err = r.doc.Replace(ContainerPoints, html, stamp)
	return err
}

// Achievements renders unlock notifications.
func (r *Renderer) Achievements(list []gamification.Achievement) ([]string, error) {
	out := make([]string, 0, len(list))
	for _, a := range list {
		html, err := r.loader.Render("achievement", map[string]string{
			"icon":        a.Icon,
			"name":        a.Name,
			"description": a.Description,
		})
		if err != nil {
			return nil, fmt.Errorf("отрисовка достижения: %w", err)
		}
		out = append(out, html)
	}
	return out, nil
}

// Footer renders the build date, falling back to today's date.
func (r *Renderer) Footer(info task.BuildInfo, stamp uint64) error {
	date := info.BuildDate
	if date == "" {
		date = r.now().Format("2006.01.02")
	}

	html, err := r.loader.Render("footer", map[string]string{"build_date": date})
	if err != nil {
		return fmt.Errorf("отрисовка подвала: %w", err)
	}
	_, err = r.doc.Replace(ContainerFooter, html, stamp)
	return err
}

type ConfirmKind string

const (
	ConfirmDelete   ConfirmKind = "delete"
	ConfirmComplete ConfirmKind = "complete"
	ConfirmDefault  ConfirmKind = "default"
)

// Confirm renders a confirmation modal whose confirm button posts to action.
func (r *Renderer) Confirm(kind ConfirmKind, message, action string) (string, error) {
	title, button := "❓ Confirm Action", "OK"
	switch kind {
	case ConfirmDelete:
		title, button = "🗑️ Delete Task", "Delete"
	case ConfirmComplete:
		title, button = "✅ Complete Task", "Complete"
	default:
		kind = ConfirmDefault
	}

	return r.loader.Render("confirm", map[string]string{
		"type":     string(kind),
		"modal_id": "customConfirmModal_" + uuid.NewString(),
		"title":    title,
		"message":  message,
		"action":   action,
		"button":   button,
	})
}

// Page is the data of the full page.
type Page struct {
	TaskCSS      template.CSS
	Points       template.HTML
	Alert        string
	Achievements []template.HTML
	Form         Form
	Tasks        template.HTML
	Today        template.HTML
	Footer       template.HTML
	Confirm      template.HTML
}

// Form holds the add-task form values shown on the page.
type Form struct {
	Text    string
	Days    string
	Hours   string
	Minutes string
	Month   string
	Day     string
	Year    string
}

// WritePage fills the page with the current container contents and writes it to w.
func (r *Renderer) WritePage(w io.Writer, p Page) error {
	if r.page == nil {
		return fmt.Errorf("%w: page template", ErrContainerNotFound)
	}

	fill := func(name string, dst *template.HTML) error {
		html, err := r.doc.Content(name)
		if err != nil {
			return err
		}
		*dst = template.HTML(html)
		return nil
	}
	for name, dst := range map[string]*template.HTML{
		ContainerTasks:  &p.Tasks,
		ContainerToday:  &p.Today,
		ContainerFooter: &p.Footer,
		ContainerPoints: &p.Points,
	} {
		if err := fill(name, dst); err != nil {
			return err
		}
	}

	if css, err := r.loader.Load("task", modules.KindCSS); err == nil {
		p.TaskCSS = template.CSS(css.Content)
	}
	return r.page.Execute(w, p)
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
