package status

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// Source produces the dashboard shown on each refresh.
type Source func(ctx context.Context) (Dashboard, error)

type WatchOptions struct {
	RenderOptions
	// Interval between refreshes.
	Interval time.Duration
	// Now stamps each refresh; defaults to time.Now.
	Now    func() time.Time
	Input  io.Reader
	Output io.Writer
}

type refreshedMsg struct {
	dashboard Dashboard
	at        time.Time
	err       error
}

type tickMsg struct{}

type model struct {
	ctx      context.Context
	source   Source
	opts     RenderOptions
	interval time.Duration
	now      func() time.Time
	styles   styles

	refreshes int
	output    string
	err       error
}

func (m model) Init() tea.Cmd {
	return m.refresh
}

func (m model) refresh() tea.Msg {
	dashboard, err := m.source(m.ctx)
	return refreshedMsg{dashboard: dashboard, at: m.now(), err: err}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.refreshes++
		opts := m.opts
		if !msg.at.IsZero() {
			opts.Now = msg.at
		}
		m.output = renderView(msg.dashboard, opts, m.styles)
		if m.interval <= 0 {
			return m, tea.Quit
		}
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
	case tickMsg:
		return m, m.refresh
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.interval <= 0 || m.output == "" {
		return m.output
	}
	return m.output + "\n" + m.styles.meta.Render("refreshing every "+m.interval.String()+"  q to quit")
}

// Render draws the dashboard once and returns the resulting text.
func Render(dashboard Dashboard, opts RenderOptions) (string, error) {
	final, err := run(model{
		ctx:    context.Background(),
		source: func(context.Context) (Dashboard, error) { return dashboard, nil },
		opts:   opts,
		now:    func() time.Time { return time.Time{} },
		styles: newStyles(),
	}, tea.WithInput(nil), tea.WithOutput(io.Discard))
	if err != nil {
		return "", err
	}
	return final.View(), nil
}

// Watch redraws the dashboard from source on every interval until the user
// quits or ctx is done.
func Watch(ctx context.Context, source Source, opts WatchOptions) error {
	if opts.Interval <= 0 {
		return errors.New("watch interval must be positive")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithInput(opts.Input)}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	_, err := run(model{
		ctx:      ctx,
		source:   source,
		opts:     opts.RenderOptions,
		interval: opts.Interval,
		now:      opts.Now,
		styles:   newStyles(),
	}, programOpts...)
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func run(m model, opts ...tea.ProgramOption) (model, error) {
	finalModel, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return model{}, err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return model{}, ErrUnexpectedRenderModel
	}
	if rendered.err != nil {
		return model{}, rendered.err
	}
	return rendered, nil
}
