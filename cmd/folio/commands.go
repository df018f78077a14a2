package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/ingest"
	"folio/internal/labels"
	"folio/internal/models"
	"folio/internal/portfolio"
	"folio/internal/render"
	"folio/internal/service"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

var commands = []subcommands.Command{
	&reportCmd{},
	&importCmd{},
	&datasetsCmd{},
}

func logger(level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	return log
}

func openRepo(cfg config.Config, log *logrus.Logger) (*database.Repo, func(), error) {
	db, err := database.Open(cfg.Driver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	r := database.New(db, log)
	if err := r.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, nil, err
	}
	return r, func() { db.Close() }, nil
}

type reportCmd struct {
	file    string
	dataset string
	group   string
	sort    string
	top     int
	asOf    string
	raw     bool
	width   int
	filters map[string]*multiFlag
}

// multiFlag collects every occurrence of a repeated flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ", ") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the portfolio dashboard" }
func (*reportCmd) Usage() string {
	return `folio report [-f <file.csv> | -d <dataset>] [-group <key>] [-sort <key>] [-member a -member b] ...

  Summarizes holdings by the chosen key and prints the summary, detail, top
  performers and average metrics tables. Without -f or -d the most recent
  stored dataset is used.
`
}

func (p *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.file, "f", "", "Read holdings from this CSV file instead of the database.")
	f.StringVar(&p.dataset, "d", "", "Stored dataset id.")
	f.StringVar(&p.group, "group", "member", "Summary key (member, broker, sector, stock).")
	f.StringVar(&p.sort, "sort", "", "Detail sort key (defaults to the summary key).")
	f.IntVar(&p.top, "top", 10, "Number of top performers to list.")
	f.StringVar(&p.asOf, "as-of", "", "Date for holding periods (YYYY-MM-DD, defaults to today).")
	f.BoolVar(&p.raw, "raw", false, "Print markdown instead of styled terminal output.")
	f.IntVar(&p.width, "width", 120, "Word wrap width of the terminal output.")
	p.filters = map[string]*multiFlag{}
	for _, k := range []string{"portfolio", "member", "broker", "sector", "stock"} {
		p.filters[k] = &multiFlag{}
		f.Var(p.filters[k], k, fmt.Sprintf("A %s value to keep, repeat for several.", k))
	}
}

func (p *reportCmd) query() (service.Query, error) {
	v := url.Values{"group": {p.group}, "top": {fmt.Sprint(p.top)}}
	if p.sort != "" {
		v.Set("sort", p.sort)
	}
	if p.asOf != "" {
		v.Set("as_of", p.asOf)
	}
	for k, vals := range p.filters {
		v[k] = append(v[k], *vals...)
	}
	return service.ParseQuery(v)
}

func (p *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	log := logger(cfg.LogLevel)

	q, err := p.query()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	var report *service.Report
	if p.file != "" {
		holdings, err := ingest.ReadFile(p.file, log)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if q.AsOf.IsZero() {
			q.AsOf = time.Now().UTC()
		}
		report = service.BuildReport(models.Dataset{Name: filepath.Base(p.file), Source: p.file}, holdings, q)
	} else {
		repo, closeDB, err := openRepo(cfg, log)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		defer closeDB()
		id := p.dataset
		if id == "" {
			latest, err := repo.LatestDataset(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "no dataset to report on: %v\n", err)
				return subcommands.ExitFailure
			}
			id = latest.ID
		}
		report, err = service.NewDashboard(repo, log).Build(ctx, id, q)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	catalog, err := labels.NewCatalog(cfg.LabelsFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	md := render.Markdown(report, catalog.Lookup(cfg.Language), portfolio.NewFormatter(cfg.Currency))
	if p.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	out, err := render.Terminal(md, p.width)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Print(out)
	return subcommands.ExitSuccess
}

type importCmd struct {
	name string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "store holdings CSV files as datasets" }
func (*importCmd) Usage() string {
	return `folio import [-name <name>] <file.csv>...

  Validates and stores each CSV file as a new dataset.
`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "", "Dataset name (defaults to the file name, only with a single file).")
}

func (p *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "at least one CSV file is required")
		return subcommands.ExitUsageError
	}
	if p.name != "" && f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "-name can only be used with a single file")
		return subcommands.ExitUsageError
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	log := logger(cfg.LogLevel)
	repo, closeDB, err := openRepo(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeDB()

	dash := service.NewDashboard(repo, log)
	for _, path := range f.Args() {
		name := p.name
		if name == "" {
			name = filepath.Base(path)
		}
		ds, err := importFile(ctx, dash, name, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s\t%s\t%d holdings\n", ds.ID, ds.Name, ds.Rows)
	}
	return subcommands.ExitSuccess
}

func importFile(ctx context.Context, dash *service.Dashboard, name, path string) (models.Dataset, error) {
	fh, err := os.Open(path)
	if err != nil {
		return models.Dataset{}, err
	}
	defer fh.Close()
	return dash.Import(ctx, name, path, fh)
}

type datasetsCmd struct{}

func (*datasetsCmd) Name() string     { return "datasets" }
func (*datasetsCmd) Synopsis() string { return "list stored datasets" }
func (*datasetsCmd) Usage() string {
	return `folio datasets

  Lists stored datasets, newest first.
`
}

func (*datasetsCmd) SetFlags(*flag.FlagSet) {}

func (*datasetsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	repo, closeDB, err := openRepo(cfg, logger(cfg.LogLevel))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeDB()

	list, err := repo.ListDatasets(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	writeDatasets(os.Stdout, list)
	return subcommands.ExitSuccess
}

func writeDatasets(w io.Writer, list []models.Dataset) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tROWS\tIMPORTED\tSOURCE")
	for _, ds := range list {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", ds.ID, ds.Name, ds.Rows, ds.CreatedAt.Format("2006-01-02 15:04"), ds.Source)
	}
	tw.Flush()
}
