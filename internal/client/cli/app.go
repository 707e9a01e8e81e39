package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/corenotes/internal/client/client"
	"github.com/dmitrijs2005/corenotes/internal/client/config"
	"github.com/dmitrijs2005/corenotes/internal/client/services"
	"github.com/dmitrijs2005/corenotes/internal/logging"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	tasks    *services.TaskList
	reader   *bufio.Reader
	out      io.Writer
	renderer *Renderer
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, logger)
	if err != nil {
		return nil, err
	}

	app := newApp(c, logger, bufio.NewReader(os.Stdin), os.Stdout)
	app.tasks = services.NewTaskList(apiClient, logger, services.WithOnChange(app.onChange))
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	return &App{
		config:   c,
		logger:   logger,
		reader:   reader,
		out:      out,
		renderer: NewRenderer(out),
	}
}

// Run loads the list, draws it, and runs the REPL until the user leaves.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Core Notes CLI, store at %s (type 'help' for commands)\n", a.config.ServerURL)
	_ = a.Reload(ctx)
	runREPL(ctx, a, a.status, a.reader)
}

// onChange reports requests that are still loading; the full view is drawn
// once a command finishes.
func (a *App) onChange(v services.View) {
	if v.Loading {
		fmt.Fprintln(a.out, "Loading notes...")
	}
}

func (a *App) status() string {
	v := a.tasks.View()
	s := fmt.Sprintf("%d notes", v.Total())
	if v.SearchQuery != "" {
		s += fmt.Sprintf(", search %q", v.SearchQuery)
	}
	return s
}

func (a *App) render() {
	fmt.Fprint(a.out, a.renderer.Render(a.tasks.View()))
}
