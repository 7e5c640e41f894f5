package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/imagerelay/api/internal/config"
	"github.com/imagerelay/api/internal/imagegen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	genModel       string
	genAspectRatio string
	genNumImages   int
	genSourceImage string
	genOutputDir   string
	genJSON        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate images without running the server",
	Long: `Run the provider fallback chain in-process and print the image references.

Examples:
  imagerelay generate "a red fox" --aspect-ratio 16:9 --num-images 2
  imagerelay generate "make it watercolor" --model black-forest-labs/FLUX.1-kontext-pro --image fox.png
  imagerelay generate "a lighthouse" --out ./images`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genModel, "model", "", "Model identifier (default: the default provider's first model)")
	generateCmd.Flags().StringVar(&genAspectRatio, "aspect-ratio", "1:1", "Aspect ratio: 1:1, 16:9, 9:16, 4:3, square, landscape, portrait")
	generateCmd.Flags().IntVar(&genNumImages, "num-images", 1, "Number of images to request")
	generateCmd.Flags().StringVar(&genSourceImage, "image", "", "Source image file for image-to-image models")
	generateCmd.Flags().StringVar(&genOutputDir, "out", "", "Directory to save images into")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "Print the result as JSON")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Load()
	if cfg.LogLevel == "info" {
		cfg.LogLevel = "warn"
	}
	logger := newLogger(cfg)
	defer logger.Sync()

	relay, err := newRelay(cfg, logger)
	if err != nil {
		return err
	}

	req := imagegen.Request{
		Prompt:      args[0],
		Model:       genModel,
		AspectRatio: genAspectRatio,
		NumImages:   genNumImages,
	}
	if genSourceImage != "" {
		if req.Image, err = readSourceImage(genSourceImage); err != nil {
			return err
		}
	}

	result, err := relay.Generate(ctx, req)
	if err != nil {
		return err
	}

	if genOutputDir != "" {
		if err := saveImages(ctx, result.Images, genOutputDir, logger); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if genJSON || !isTerminal(os.Stdout) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(out, "provider: %s\nmodel:    %s\n", result.Provider, result.Model)
	for i, ref := range result.Images {
		fmt.Fprintf(out, "[%d] %s\n", i, abbreviate(ref))
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// abbreviate shortens data URIs for terminal display.
func abbreviate(ref string) string {
	if strings.HasPrefix(ref, "data:") && len(ref) > 80 {
		return ref[:60] + fmt.Sprintf("... (%d bytes)", len(ref))
	}
	return ref
}

func readSourceImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read source image: %w", err)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", path, mt.String())
	}
	return imagegen.DataURI(base64.StdEncoding.EncodeToString(data), mt.String()), nil
}

// saveImages writes each reference to dir as image-<index>.<ext>.
func saveImages(ctx context.Context, refs []string, dir string, logger *zap.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for i, ref := range refs {
		data, err := fetchImage(ctx, ref)
		if err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("image-%d%s", i, mimetype.Detect(data).Extension()))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
		logger.Info("saved image", zap.Int("index", i), zap.String("path", path))
	}
	return nil
}

func fetchImage(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "data:") {
		_, payload, ok := strings.Cut(ref, ";base64,")
		if !ok {
			return nil, fmt.Errorf("unsupported data URI")
		}
		return base64.StdEncoding.DecodeString(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
