package printing

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ExecDispatcher prints by shelling out to the platform spooler: lp on
// unix-likes, PowerShell Out-Printer on Windows. The rendered document is
// written to a spool file first so the command never carries the payload on
// the command line.
type ExecDispatcher struct {
	SpoolDir string
}

func NewExecDispatcher() *ExecDispatcher {
	dir := filepath.Join(os.TempDir(), "elmezan_print")
	_ = os.MkdirAll(dir, 0o755)
	return &ExecDispatcher{SpoolDir: dir}
}

func (d *ExecDispatcher) Dispatch(ctx context.Context, doc Document, printer string) DispatchResult {
	target := printer
	if target == "" {
		target = "default"
	}

	path := filepath.Join(d.SpoolDir, fmt.Sprintf("%s.txt", doc.JobID))
	if err := os.WriteFile(path, []byte(doc.Content), 0o644); err != nil {
		return DispatchResult{Printer: target, Method: "spool", Error: err.Error()}
	}

	var cmd *exec.Cmd
	var method string
	if runtime.GOOS == "windows" {
		method = "powershell"
		script := fmt.Sprintf("Get-Content -Raw '%s' | Out-Printer", strings.ReplaceAll(path, "'", "''"))
		if printer != "" {
			script = fmt.Sprintf("Get-Content -Raw '%s' | Out-Printer -Name '%s'",
				strings.ReplaceAll(path, "'", "''"), strings.ReplaceAll(printer, "'", "''"))
		}
		cmd = exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script)
	} else {
		method = "lp"
		args := []string{path}
		if printer != "" {
			args = []string{"-d", printer, path}
		}
		cmd = exec.CommandContext(ctx, "lp", args...)
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return DispatchResult{
			Printer: target,
			Method:  method,
			Error:   fmt.Sprintf("%v: %s", err, strings.TrimSpace(string(out))),
		}
	}
	return DispatchResult{OK: true, Printer: target, Method: method}
}
