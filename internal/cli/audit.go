// File path: internal/cli/audit.go
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nicodishanthj/lqa-insight/internal/audit"
	"github.com/nicodishanthj/lqa-insight/internal/common"
	"github.com/nicodishanthj/lqa-insight/internal/export"
	"github.com/nicodishanthj/lqa-insight/internal/ingest"
	"github.com/nicodishanthj/lqa-insight/internal/locale"
	"github.com/nicodishanthj/lqa-insight/internal/prompt"
	"github.com/nicodishanthj/lqa-insight/internal/report"
)

var auditCmd = &cobra.Command{
	Use:   "audit FILE...",
	Short: "Audit report files and print the summary",
	Long: `Audit one or more HTML reports without starting the server.

Files that are not .html or .htm are skipped. The summary is printed to
stdout; --out writes the two-sheet workbook and --json the raw report.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringP("locale", "l", "", "output language: en-US or zh-CN (default from config)")
	auditCmd.Flags().StringP("out", "o", "", "write the workbook to this path")
	auditCmd.Flags().String("json", "", "write the report JSON to this path")
	addLLMFlags(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	logger := common.Logger()
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	loc := cfg.Locale()
	if value, _ := cmd.Flags().GetString("locale"); strings.TrimSpace(value) != "" {
		parsed, ok := locale.Parse(value)
		if !ok {
			return fmt.Errorf("unsupported locale %q", value)
		}
		loc = parsed
	}

	batch, err := ingest.ReadPaths(ctx, args)
	if err != nil {
		return err
	}
	for _, name := range batch.Skipped {
		fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render("skipped "+name))
	}

	client, err := newAuditClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("llm provider: %w", err)
	}
	sources := make([]prompt.Source, 0, len(batch.Files))
	for _, f := range batch.Files {
		sources = append(sources, prompt.Source{Name: f.Name, Content: f.Content})
	}
	res := client.Audit(ctx, sources, loc)
	if !res.OK() {
		msg := audit.DefaultErrorMessage
		if res.Err != nil && res.Err.Message != "" {
			msg = res.Err.Message
		}
		fmt.Fprintln(cmd.ErrOrStderr(), renderError(loc, msg))
		if res.Err != nil {
			return fmt.Errorf("audit failed (%s): %w", res.Err.Kind, res.Err)
		}
		return errors.New("audit failed")
	}

	fmt.Fprint(cmd.OutOrStdout(), renderSummary(res.Report, loc))

	if path, _ := cmd.Flags().GetString("out"); path != "" {
		if err := writeWorkbook(path, res.Report, loc); err != nil {
			return err
		}
		logger.Info("insight: workbook written", "path", path)
	}
	if path, _ := cmd.Flags().GetString("json"); path != "" {
		data, err := json.MarshalIndent(res.Report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("insight: report written", "path", path)
	}
	return nil
}

func writeWorkbook(path string, rep *report.AuditReport, loc locale.Locale) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := export.Write(f, rep, loc); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
