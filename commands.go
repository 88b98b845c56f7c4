package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nedaZarei/WeddingSite/config"
	"github.com/nedaZarei/WeddingSite/pkg/logger"
	"github.com/nedaZarei/WeddingSite/pkg/mirror"
	"github.com/nedaZarei/WeddingSite/pkg/models"
	"github.com/nedaZarei/WeddingSite/pkg/storage"
	"github.com/nedaZarei/WeddingSite/service"
)

var configPath string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "wedding",
		Short:        "Wedding site backend: RSVP API and image mirror",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config/config.yaml", "Path to yaml config (optional)")

	rootCmd.AddCommand(newServeCmd(), newLambdaCmd(), newMirrorImagesCmd())
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.InitConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return cfg, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc := service.NewService(cfg)
			errCh := make(chan error, 1)
			go func() { errCh <- svc.StartService(ctx) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logger.Log.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return svc.Shutdown(shutdownCtx)
			}
		},
	}
}

func newLambdaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Serve the API as an AWS Lambda function behind API Gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc := service.NewService(cfg)
			if err := svc.Connect(cmd.Context()); err != nil {
				return err
			}
			lambda.Start(svc.LambdaHandler)
			return nil
		},
	}
}

func newMirrorImagesCmd() *cobra.Command {
	var (
		driver   string
		endpoint string
		bucket   string
		region   string
		cdnHost  string
	)
	cmd := &cobra.Command{
		Use:   "mirror-images",
		Short: "Download the eucalyptus images and upload them to object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if cfg.Storage.AccessKey == "" || cfg.Storage.SecretKey == "" {
				fmt.Fprintln(out, "Error: AWS credentials not found in environment variables.")
				fmt.Fprintln(out, "Please set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
				return storage.ErrMissingCredentials
			}

			store, err := storage.NewObjectStore(cmd.Context(), storage.Options{
				Driver:    driver,
				Endpoint:  endpoint,
				AccessKey: cfg.Storage.AccessKey,
				SecretKey: cfg.Storage.SecretKey,
				Bucket:    bucket,
				Region:    region,
			})
			if err != nil {
				return err
			}

			m := mirror.New(mirror.Config{
				CDNHost:      cdnHost,
				AccessKey:    cfg.Storage.AccessKey,
				PublicBucket: bucket,
				Policy:       mirror.BestEffort,
			}, &http.Client{Timeout: mirror.ScriptFetchTimeout}, store, logger.Log)

			return runMirrorImages(cmd.Context(), out, m, models.EucalyptusImages)
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "s3", "Storage driver: s3 or minio")
	cmd.Flags().StringVar(&endpoint, "endpoint", "s3.amazonaws.com", "Storage endpoint host")
	cmd.Flags().StringVar(&bucket, "bucket", getEnv("S3_BUCKET_NAME", "bucket"), "Bucket to upload into")
	cmd.Flags().StringVar(&region, "region", getEnv("AWS_REGION", "us-east-1"), "Storage region")
	cmd.Flags().StringVar(&cdnHost, "cdn-host", getEnv("CDN_HOST", "cdn.poehali.dev"), "Host of the public CDN")
	return cmd
}

// runMirrorImages mirrors every source, printing each step and then a summary.
// It fails only when no image made it into storage.
func runMirrorImages(ctx context.Context, out io.Writer, m *mirror.Mirror, sources []models.ImageSource) error {
	result, err := m.WithProgress(out).Run(ctx, sources)
	if err != nil && !errors.Is(err, mirror.ErrNothingUploaded) {
		return err
	}

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(out)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "UPLOAD SUMMARY")
	fmt.Fprintln(out, rule)
	if len(result.Images) == 0 {
		fmt.Fprintln(out, "No images were uploaded successfully.")
		return mirror.ErrNothingUploaded
	}
	fmt.Fprintf(out, "Successfully uploaded %d images:\n", len(result.Images))
	for _, image := range result.Images {
		fmt.Fprintf(out, "  - %s\n", image.Key)
		fmt.Fprintf(out, "    URL: %s\n", image.URL)
	}
	if len(result.Failures) > 0 {
		fmt.Fprintf(out, "Failed to upload %d images.\n", len(result.Failures))
		logger.Log.Warn("mirror finished with failures", zap.Int("failed", len(result.Failures)))
	}
	fmt.Fprintln(out, rule)
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
