package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jammie/rdf/internal/store"
)

// StoreOptions holds flags shared by the store subcommands.
type StoreOptions struct {
	*RootOptions
	Database string
	Batch    string
	Datatype string
}

// RecordView is the printable form of a stored literal.
type RecordView struct {
	ID        string `json:"id"`
	Batch     string `json:"batch"`
	Seq       int64  `json:"seq"`
	Datatype  string `json:"datatype"`
	Kind      string `json:"kind"`
	String    string `json:"string"`
	Canonical string `json:"canonical,omitempty"`
	Valid     bool   `json:"valid"`
}

func newRecordView(rec store.Record) RecordView {
	return RecordView{
		ID:        rec.ID,
		Batch:     rec.Batch,
		Seq:       rec.Seq,
		Datatype:  rec.Datatype,
		Kind:      rec.Kind,
		String:    rec.Rendered,
		Canonical: rec.Canonical.String,
		Valid:     rec.Valid,
	}
}

// PutResult holds the records written by store put.
type PutResult struct {
	Batch   string       `json:"batch"`
	Records []RecordView `json:"records"`
}

// ShowResult holds a batch listing.
type ShowResult struct {
	Batch   string       `json:"batch"`
	Hash    string       `json:"hash"`
	Count   int          `json:"count"`
	Invalid int          `json:"invalid"`
	Records []RecordView `json:"records"`
}

// DriftView describes one drifted column.
type DriftView struct {
	Seq    int64  `json:"seq"`
	Field  string `json:"field"`
	Stored string `json:"stored"`
	Fresh  string `json:"fresh"`
}

// ReplayBatchResult holds the replay result for a single batch.
type ReplayBatchResult struct {
	Batch      string      `json:"batch"`
	Count      int         `json:"count"`
	Hash       string      `json:"hash"`
	Consistent bool        `json:"consistent"`
	Drifts     []DriftView `json:"drifts,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Batches       []ReplayBatchResult `json:"batches"`
	TotalBatches  int                 `json:"total_batches"`
	AllConsistent bool                `json:"all_consistent"`
}

// NewStoreCommand creates the store command group.
func NewStoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Catalogue literals in SQLite",
		Long: `Store literals in a SQLite catalogue and query them by value.

Literals are grouped in batches. Each record keeps the rendered string,
the canonical form and a value key, so equal literals can be found across
batches and a batch can be replayed to detect drift.

Examples:
  rdflit store put --db ./lit.db 14:30:00-05:00 19:30:00Z
  rdflit store find --db ./lit.db 19:30:00Z
  rdflit store show --db ./lit.db --batch 0190...
  rdflit store replay --db ./lit.db`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(newStorePutCommand(opts))
	cmd.AddCommand(newStoreFindCommand(opts))
	cmd.AddCommand(newStoreShowCommand(opts))
	cmd.AddCommand(newStoreReplayCommand(opts))

	return cmd
}

func (o *StoreOptions) open(cmd *cobra.Command) (*store.Store, error) {
	st, err := store.Open(o.Database, store.WithLogger(o.logger()))
	if err != nil {
		return nil, o.fail(cmd, ErrCodeStore, "failed to open database", err)
	}
	return st, nil
}

func newStorePutCommand(opts *StoreOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put <lexical>...",
		Short: "Store literals in a batch",
		Long: `Store each input as a literal in one batch.

Without --batch a new batch ID is generated. Invalid literals are stored
too and flagged. Storing the same term twice in a batch is a no-op.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStorePut(opts, args, cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Batch, "batch", "", "batch ID (generated if empty)")
	cmd.Flags().StringVarP(&opts.Datatype, "datatype", "d", "time", "datatype (time|date|dateTime|string|<uri>)")
	return cmd
}

func runStorePut(opts *StoreOptions, inputs []string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.formatter(cmd)

	st, err := opts.open(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	batch := opts.Batch
	if batch == "" {
		batch = st.NewBatchID()
	}

	result := PutResult{Batch: batch, Records: make([]RecordView, 0, len(inputs))}
	for _, in := range inputs {
		rec, err := st.PutLiteral(ctx, batch, buildLiteral(in, opts.Datatype))
		if err != nil {
			return opts.fail(cmd, ErrCodeStore, fmt.Sprintf("failed to store %q", in), err)
		}
		result.Records = append(result.Records, newRecordView(rec))
	}

	if opts.Format == "json" {
		return formatter.JSON(result, nil)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Batch: %s\n", result.Batch)
	for _, rv := range result.Records {
		formatRecord(w, rv, opts.Verbose)
	}
	return nil
}

func newStoreFindCommand(opts *StoreOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <lexical>",
		Short: "Find stored literals equal to a literal",
		Long: `List every stored literal equal to the input, across all batches.

Equality is literal equality: 14:30:00-05:00 finds 19:30:00Z.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreFind(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVarP(&opts.Datatype, "datatype", "d", "time", "datatype (time|date|dateTime|string|<uri>)")
	return cmd
}

func runStoreFind(opts *StoreOptions, input string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.formatter(cmd)

	st, err := opts.open(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.FindEqual(ctx, buildLiteral(input, opts.Datatype))
	if err != nil {
		return opts.fail(cmd, ErrCodeStore, "failed to query store", err)
	}

	views := make([]RecordView, len(records))
	for i, rec := range records {
		views[i] = newRecordView(rec)
	}

	if opts.Format == "json" {
		return formatter.JSON(views, nil)
	}

	w := cmd.OutOrStdout()
	if len(views) == 0 {
		fmt.Fprintf(w, "No literals equal to %s\n", input)
		return nil
	}
	for _, rv := range views {
		fmt.Fprintf(w, "%s ", truncateID(rv.Batch))
		formatRecord(w, rv, opts.Verbose)
	}
	return nil
}

func newStoreShowCommand(opts *StoreOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show",
		Short:         "List the literals of a batch",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreShow(opts, cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Batch, "batch", "", "batch ID (required)")
	_ = cmd.MarkFlagRequired("batch")
	return cmd
}

func runStoreShow(opts *StoreOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.formatter(cmd)

	st, err := opts.open(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.ReadBatch(ctx, opts.Batch)
	if err != nil {
		return opts.fail(cmd, ErrCodeStore, "failed to read batch", err)
	}
	state, err := st.GetBatchState(ctx, opts.Batch)
	if err != nil {
		return opts.fail(cmd, ErrCodeStore, "failed to get batch state", err)
	}

	result := ShowResult{
		Batch:   opts.Batch,
		Hash:    state.Hash,
		Count:   state.Count,
		Invalid: state.Invalid,
		Records: make([]RecordView, len(records)),
	}
	for i, rec := range records {
		result.Records[i] = newRecordView(rec)
	}

	if opts.Format == "json" {
		return formatter.JSON(result, nil)
	}

	w := cmd.OutOrStdout()
	if result.Count == 0 {
		fmt.Fprintf(w, "No literals found for batch: %s\n", opts.Batch)
		return nil
	}

	fmt.Fprintf(w, "Batch: %s\n", result.Batch)
	fmt.Fprintf(w, "Hash: %s\n", truncateID(result.Hash))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Literals ===")
	for _, rv := range result.Records {
		formatRecord(w, rv, opts.Verbose)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Stats ===")
	fmt.Fprintf(w, "  Total:   %d\n", result.Count)
	fmt.Fprintf(w, "  Invalid: %d\n", result.Invalid)
	return nil
}

func newStoreReplayCommand(opts *StoreOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-derive stored literals and report drift",
		Long: `Rebuild every stored literal from its rendered form and compare the
derived columns (id, kind, canonical form, value key, validity) with what
was stored.

Exit codes:
  0 - Every batch is consistent
  1 - Drift detected
  2 - Command error (database not found, etc.)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreReplay(opts, cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Batch, "batch", "", "replay a single batch")
	return cmd
}

func runStoreReplay(opts *StoreOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.formatter(cmd)

	st, err := opts.open(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	var batches []string
	if opts.Batch != "" {
		batches = []string{opts.Batch}
	} else {
		batches, err = st.ListBatches(ctx)
		if err != nil {
			return opts.fail(cmd, ErrCodeStore, "failed to list batches", err)
		}
	}

	result := ReplayResult{
		Batches:       make([]ReplayBatchResult, 0, len(batches)),
		TotalBatches:  len(batches),
		AllConsistent: true,
	}
	for _, batch := range batches {
		br, err := replayBatch(ctx, st, batch)
		if err != nil {
			return opts.fail(cmd, ErrCodeStore, fmt.Sprintf("failed to replay batch %s", batch), err)
		}
		result.Batches = append(result.Batches, br)
		if !br.Consistent {
			result.AllConsistent = false
		}
	}

	if opts.Format == "json" {
		var cliErr *CLIError
		if !result.AllConsistent {
			cliErr = &CLIError{Code: ErrCodeDrift, Message: "replay drift detected"}
		}
		if err := formatter.JSON(result, cliErr); err != nil {
			return err
		}
	} else {
		outputReplayText(cmd.OutOrStdout(), result, opts.Verbose)
	}

	if !result.AllConsistent {
		return NewExitError(ExitFailure, "replay drift detected")
	}
	return nil
}

func replayBatch(ctx context.Context, st *store.Store, batch string) (ReplayBatchResult, error) {
	state, err := st.GetBatchState(ctx, batch)
	if err != nil {
		return ReplayBatchResult{}, err
	}
	drifts, err := st.ReplayBatch(ctx, batch)
	if err != nil {
		return ReplayBatchResult{}, err
	}

	br := ReplayBatchResult{
		Batch:      batch,
		Count:      state.Count,
		Hash:       state.Hash,
		Consistent: len(drifts) == 0,
	}
	for _, d := range drifts {
		br.Drifts = append(br.Drifts, DriftView{
			Seq:    d.Record.Seq,
			Field:  d.Field,
			Stored: d.Stored,
			Fresh:  d.Fresh,
		})
	}
	return br, nil
}

func outputReplayText(w io.Writer, result ReplayResult, verbose bool) {
	if result.TotalBatches == 0 {
		fmt.Fprintln(w, "No batches found in database.")
		return
	}

	fmt.Fprintf(w, "Replay Summary: %d batch(es)\n", result.TotalBatches)
	fmt.Fprintln(w)

	for _, b := range result.Batches {
		status := "✓"
		if !b.Consistent {
			status = "✗"
		}
		fmt.Fprintf(w, "%s Batch: %s\n", status, b.Batch)
		fmt.Fprintf(w, "  Literals: %d\n", b.Count)
		if verbose {
			fmt.Fprintf(w, "  Hash: %s\n", b.Hash)
		}
		for _, d := range b.Drifts {
			fmt.Fprintf(w, "  [%d] %s: stored %q, fresh %q\n", d.Seq, d.Field, d.Stored, d.Fresh)
		}
		fmt.Fprintln(w)
	}

	if result.AllConsistent {
		fmt.Fprintln(w, "✓ All batches consistent")
		return
	}
	fmt.Fprintln(w, "✗ Replay drift detected")
}

// formatRecord writes one record line for text output.
func formatRecord(w io.Writer, rv RecordView, verbose bool) {
	mark := ""
	if !rv.Valid {
		mark = " (invalid)"
	}
	if rv.Canonical != "" && rv.Canonical != rv.String {
		fmt.Fprintf(w, "  [%d] %s %s -> %s%s\n", rv.Seq, rv.Kind, rv.String, rv.Canonical, mark)
	} else {
		fmt.Fprintf(w, "  [%d] %s %s%s\n", rv.Seq, rv.Kind, rv.String, mark)
	}
	if verbose {
		fmt.Fprintf(w, "       ID: %s\n", truncateID(rv.ID))
		fmt.Fprintf(w, "       Datatype: %s\n", rv.Datatype)
	}
}

// truncateID truncates a long ID for display.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}
