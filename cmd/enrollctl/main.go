// Command enrollctl inspects the course catalog, prices a selection and
// checks a candidate record the same way the edit form does.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/DSACMS/enrollment-form-api/pkg/catalog"
	"github.com/DSACMS/enrollment-form-api/pkg/core"
	"github.com/DSACMS/enrollment-form-api/pkg/form"
	"github.com/DSACMS/enrollment-form-api/pkg/validation"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

const usage = `usage: enrollctl <command> [flags]

commands:
  courses                 list the course catalog
  quote   -courses a,b    price a course selection
  validate -file rec.json check a candidate record
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := core.LoadEnv(); err != nil {
		slog.Debug("env files not loaded", slog.Any("error", err))
	}

	err := run(context.Background(), os.Args[1:], os.Stdout)
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	case err != nil:
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if os.Getenv("ENROLLCTL_DEBUG") != "" {
		logger = core.NewLogger(core.DefaultConfig())
	}
	cat := catalog.Load(ctx, os.Getenv("CATALOG_DATABASE_URL"), logger)

	switch args[0] {
	case "courses":
		return listCourses(cat, out)
	case "quote":
		return quote(cat, args[1:], out)
	case "validate":
		return validateRecord(args[1:], out)
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func listCourses(cat catalog.Catalog, out io.Writer) error {
	color.New(color.FgYellow).Fprintln(out, "Courses")

	table := newTable(out)
	table.SetHeader([]string{"Course", "Price"})
	for _, course := range cat.Courses() {
		table.Append([]string{course.CourseName, catalog.FormatPrice(course.CoursePrice)})
	}
	table.Render()
	return nil
}

func quote(cat catalog.Catalog, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	courses := fs.String("courses", "", "comma separated course names")
	mode := fs.String("mode", "", "payment mode, Online or Cash")
	kind := fs.String("type", "", "payment type, full or partial")
	partial := fs.String("partial", "", "amount already paid")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}

	rec := candidate.Record{
		PartialPaidAmount: candidate.Amount(candidate.ParseAmount(*partial)),
	}
	if err := rec.Set(candidate.FieldPaymentMode, *mode); err != nil {
		return err
	}
	switch strings.ToLower(*kind) {
	case "":
	case "full":
		rec.PaymentType = candidate.FullPayment
	case "partial":
		rec.PaymentType = candidate.PartialPayment
	default:
		return fmt.Errorf("unknown payment type %q: %w", *kind, errUsage)
	}

	for _, name := range strings.Split(*courses, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := cat.Lookup(name); !ok {
			return fmt.Errorf("%w: %s", form.ErrUnknownCourse, name)
		}
		rec.SelectCourse(name, true)
	}

	f := form.New(form.Deps{Catalog: cat}, form.Options{})
	summary := f.Summary(&form.Session{Record: rec})

	table := newTable(out)
	table.SetHeader([]string{"Item", "Value"})
	table.AppendBulk([][]string{
		{"Courses Selected", strconv.Itoa(summary.CoursesSelected)},
		{"Payment Type", summary.PaymentType},
		{"Payment Mode", summary.PaymentMode},
		{"GST", summary.GST},
		{"Price", summary.Price},
		{"Remaining", summary.Remaining},
		{"Subtotal", summary.Subtotal},
	})
	table.Render()
	return nil
}

func validateRecord(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	file := fs.String("file", "", "candidate record as JSON, - for stdin")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	if *file == "" {
		return fmt.Errorf("missing -file: %w", errUsage)
	}

	var (
		data []byte
		err  error
	)
	if *file == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*file)
	}
	if err != nil {
		return fmt.Errorf("read record: %w", err)
	}

	var rec candidate.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}

	errs, ok := validation.Validate(&rec)

	table := newTable(out)
	table.SetHeader([]string{"Field", "Value", "Error"})
	for _, field := range validation.Fields {
		value, _ := rec.Get(field)
		table.Append([]string{field, value, errs[field]})
	}
	table.Render()

	if !ok {
		return fmt.Errorf("record has %d invalid field(s): %s",
			len(errs.Invalid()), strings.Join(errs.Invalid(), ", "))
	}
	color.New(color.FgGreen).Fprintln(out, "record is valid")
	return nil
}

func newTable(out io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetAutoWrapText(false)
	return table
}
