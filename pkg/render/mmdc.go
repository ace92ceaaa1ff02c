package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// puppeteerConfig is passed to mermaid-cli so the bundled Chromium also
// starts inside containers, where sandboxing is unavailable.
const puppeteerConfig = `{"args": ["--no-sandbox"]}`

// Mermaid converts a .mmd file to an image by invoking the mermaid-cli
// executable. The command may carry its own arguments ("npx mmdc"); the
// output format is picked by mmdc from the output file's extension.
func Mermaid(ctx context.Context, command, inputPath, outputPath string) error {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return fmt.Errorf("mermaid-cli command is empty")
	}
	if _, err := exec.LookPath(parts[0]); err != nil {
		return fmt.Errorf("mermaid-cli not found: %w", err)
	}

	configPath := filepath.Join(os.TempDir(), "puppeteer-"+uuid.NewString()+".json")
	if err := os.WriteFile(configPath, []byte(puppeteerConfig), 0o600); err != nil {
		return fmt.Errorf("write puppeteer config: %w", err)
	}
	defer os.Remove(configPath)

	args := append(parts[1:], "-p", configPath, "-i", inputPath, "-o", outputPath)
	cmd := exec.CommandContext(ctx, parts[0], args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %v: %s", parts[0], err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
