package piiredact

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redactyl/piiredact/internal/audit"
	"github.com/redactyl/piiredact/internal/cache"
	"github.com/redactyl/piiredact/internal/config"
	"github.com/redactyl/piiredact/internal/ctxparse"
	"github.com/redactyl/piiredact/internal/engine"
	"github.com/redactyl/piiredact/internal/report"
	"github.com/redactyl/piiredact/internal/tabular"
	"github.com/redactyl/piiredact/internal/types"
	"github.com/spf13/cobra"
)

var (
	flagOutput       string
	flagThreads      int
	flagPolicy       string
	flagNoComposites bool
	flagDisable      string
	flagDataColumn   string
	flagIDColumn     string
	flagExclude      string
	flagJSON         bool
	flagFailOnPII    bool
	flagAuditLog     string
	flagNoCache      bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan <input.csv|glob>...",
		Short: "Mask PII in CSV files and write redacted copies",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (single input only; default <input>_redacted.csv)")
	cmd.Flags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&flagPolicy, "policy", "", "combination policy: threshold|mask-on-sensitive")
	cmd.Flags().BoolVar(&flagNoComposites, "no-composites", false, "disable sibling-key rules (split name, city + PIN)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "disable these identifiers (comma-separated names)")
	cmd.Flags().StringVar(&flagDataColumn, "data-column", "", "name of the JSON data column (default data_json)")
	cmd.Flags().StringVar(&flagIDColumn, "id-column", "", "name of the record id column (default record_id)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "*_redacted.csv", "comma-separated globs of inputs to skip")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "print the run summary as JSON")
	cmd.Flags().BoolVar(&flagFailOnPII, "fail-on-pii", false, "exit 1 when any record is sensitive")
	cmd.Flags().StringVar(&flagAuditLog, "audit-log", "", "append a run record to this JSONL file")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "reprocess inputs even when they and the settings are unchanged")
}

func runScan(cmd *cobra.Command, args []string) error {
	lcfg, gcfg, err := loadConfigs()
	if err != nil {
		return err
	}
	inputs, err := expandInputs(args, parseGlobsList(flagExclude))
	if err != nil {
		return err
	}
	output := pickString(flagOutput, lcfg.Output, gcfg.Output)
	if output != "" && len(inputs) > 1 {
		return fmt.Errorf("--output needs a single input, got %d", len(inputs))
	}
	proc, err := buildProcessor(processorFlags{
		policy:       flagPolicy,
		noComposites: flagNoComposites,
		disable:      flagDisable,
	}, lcfg, gcfg)
	if err != nil {
		return err
	}
	cols := tabular.Columns{
		ID:   pickString(flagIDColumn, lcfg.IDColumn, gcfg.IDColumn),
		Data: pickString(flagDataColumn, lcfg.DataColumn, gcfg.DataColumn),
	}
	threads := pickInt(flagThreads, lcfg.Threads, gcfg.Threads)
	settings, err := settingsKey(proc, cols, config.Identifiers(lcfg, gcfg))
	if err != nil {
		return err
	}
	db, _ := cache.Load(cache.DefaultPath) // missing or corrupt cache starts empty

	start := time.Now()
	sum := report.Summary{Inputs: inputs}
	runDigest := xxhash.New()
	for _, in := range inputs {
		out := output
		if out == "" {
			out = outputPath(in)
		}
		fp, err := cache.Fingerprint(in, settings+"\x00"+out)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}

		var fileSum report.Summary
		var digest uint64
		if e, ok := db.Fresh(in, fp); ok && !flagNoCache {
			slog.Info("input unchanged, keeping previous output", "input", in, "output", out)
			fileSum, digest = e.Summary, e.RowDigest
		} else {
			slog.Debug("scanning", "input", in, "output", out, "threads", engine.Workers(threads))
			if fileSum, digest, err = scanFile(cmd.Context(), proc, in, out, cols, threads); err != nil {
				return err
			}
			if fd, err := cache.FileDigest(out); err == nil {
				db.Entries[in] = cache.Entry{Fingerprint: fp, Output: out, FileDigest: fd, RowDigest: digest, Summary: fileSum}
			}
		}
		sum.Merge(fileSum)
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], digest)
		_, _ = runDigest.Write(b[:])
		sum.Outputs = append(sum.Outputs, out)
	}
	sum.Duration = time.Since(start)
	db.LastOutputs = sum.Outputs
	if err := cache.Save(cache.DefaultPath, db); err != nil {
		slog.Warn("could not write scan cache", "path", cache.DefaultPath, "error", err)
	}
	slog.Info("scan complete",
		"records", sum.Records,
		"sensitive", sum.Sensitive,
		"malformed", sum.Malformed,
		"duration", sum.Duration.Round(time.Millisecond))

	w := cmd.OutOrStdout()
	if flagJSON {
		err = report.WriteJSON(w, sum)
	} else {
		err = report.PrintTable(w, sum, report.PrintOptions{NoColor: noColor(lcfg, gcfg)})
	}
	if err != nil {
		return err
	}

	if path := pickString(flagAuditLog, lcfg.AuditLog, gcfg.AuditLog); path != "" {
		rec := audit.NewRun(sum, proc.Policy().String(), runDigest.Sum64())
		if err := audit.NewAuditLog(path).LogRun(rec); err != nil {
			slog.Warn("could not write audit log", "path", path, "error", err)
		}
	}

	if flagFailOnPII && sum.Sensitive > 0 {
		return errPIIFound
	}
	return nil
}

// scanFile streams one input through the processor in batches and writes
// the redacted rows to out. It returns the file's summary and row digest.
func scanFile(ctx context.Context, proc *engine.Processor, in, out string, cols tabular.Columns, threads int) (sum report.Summary, digest uint64, err error) {
	sum.Inputs = []string{in}
	src, err := os.Open(in)
	if err != nil {
		return sum, 0, fmt.Errorf("open input: %w", err)
	}
	defer src.Close()
	r, err := tabular.NewReader(src, cols)
	if err != nil {
		return sum, 0, fmt.Errorf("%s: %w", in, err)
	}

	dst, err := os.Create(out)
	if err != nil {
		return sum, 0, fmt.Errorf("create output: %w", err)
	}
	defer dst.Close()
	w, err := tabular.NewWriter(dst)
	if err != nil {
		return sum, 0, fmt.Errorf("%s: %w", out, err)
	}

	batch := engine.BatchSize(threads)
	for {
		rows, err := r.Chunk(batch)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, 0, fmt.Errorf("%s: %w", in, err)
		}
		verdicts, err := engine.ProcessAll(ctx, proc, jobsFor(in, rows), threads)
		if err != nil {
			return sum, 0, err
		}
		for _, v := range verdicts {
			logVerdict(v)
			if err := w.WriteVerdict(v); err != nil {
				return sum, 0, fmt.Errorf("%s: %w", out, err)
			}
			sum.Add(v)
		}
	}
	if err := w.Flush(); err != nil {
		return sum, 0, fmt.Errorf("%s: %w", out, err)
	}
	if err := dst.Close(); err != nil {
		return sum, 0, fmt.Errorf("%s: %w", out, err)
	}
	return sum, w.Digest(), nil
}

func jobsFor(in string, rows []tabular.Row) []engine.Job {
	jobs := make([]engine.Job, len(rows))
	for i, row := range rows {
		root, err := ctxparse.Parse(row.Data)
		if err != nil {
			slog.Warn("malformed record passed through",
				"input", in, "record_id", row.ID, "line", row.Line, "error", err)
		}
		jobs[i] = engine.Job{ID: row.ID, Raw: row.Data, Root: root, Err: err}
	}
	return jobs
}

func logVerdict(v types.Verdict) {
	var malformed *ctxparse.MalformedInputError
	if v.Err != nil && !errors.As(v.Err, &malformed) {
		slog.Error("record passed through", "record_id", v.ID, "error", v.Err)
	}
	for _, p := range v.Unclassified {
		slog.Debug("unclassifiable field", "record_id", v.ID, "path", p)
	}
}
