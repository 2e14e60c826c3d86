package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xyz-asif/foundit/internal/config"
	"github.com/xyz-asif/foundit/internal/database"
	"github.com/xyz-asif/foundit/internal/features/feed"
	"github.com/xyz-asif/foundit/internal/features/identity"
	"github.com/xyz-asif/foundit/internal/features/media"
	"github.com/xyz-asif/foundit/internal/features/reports"
	"github.com/xyz-asif/foundit/internal/pkg/cloudinary"
	"github.com/xyz-asif/foundit/internal/pkg/logger"
)

// CLI holds what every subcommand shares
type CLI struct {
	cfg     *config.Config
	log     *logger.Logger
	verbose bool
}

// newRootCommand creates the root cobra command
func newRootCommand() *cobra.Command {
	cli := &CLI{}

	rootCmd := &cobra.Command{
		Use:           "foundit",
		Short:         "Report found items and browse the last week of reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.cfg = config.Load()
			level := logger.WARN
			if cli.verbose {
				level = logger.DEBUG
			}
			cli.log = logger.NewWithWriter(level, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(newReportCommand(cli))
	rootCmd.AddCommand(newFeedCommand(cli))
	rootCmd.AddCommand(newTokenCommand(cli))

	return rootCmd
}

type reportFlags struct {
	item     string
	found    string
	retrieve string
	details  string
	image    string
	token    string
}

func newReportCommand(cli *CLI) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "File a found-item report, optionally with a local photo",
		Example: `  foundit report --item "Blue umbrella" --found "Library 2F" --retrieve "Front desk" \
    --image ./umbrella.jpg --token "$FOUNDIT_TOKEN"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return cli.runReport(ctx, cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.item, "item", "", "What was found")
	cmd.Flags().StringVar(&flags.found, "found", "", "Where it was found")
	cmd.Flags().StringVar(&flags.retrieve, "retrieve", "", "Where the owner can pick it up")
	cmd.Flags().StringVar(&flags.details, "details", "", "Anything else worth knowing")
	cmd.Flags().StringVar(&flags.image, "image", "", "Path to a photo of the item")
	cmd.Flags().StringVar(&flags.token, "token", os.Getenv("FOUNDIT_TOKEN"), "Bearer token (defaults to $FOUNDIT_TOKEN)")

	return cmd
}

func newFeedCommand(cli *CLI) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "List reports from the last 7 days, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return cli.runFeed(ctx, cmd, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the feed as JSON")

	return cmd
}

// newTokenCommand issues session tokens for the jwt auth provider, which has
// no sign-in flow of its own
func newTokenCommand(cli *CLI) *cobra.Command {
	var id identity.Identity

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a session token (AUTH_PROVIDER=jwt only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cli.cfg.AuthProvider != "jwt" {
				return fmt.Errorf("tokens can only be issued for the jwt auth provider, configured provider is %q", cli.cfg.AuthProvider)
			}
			verifier := identity.NewJWTVerifier(cli.cfg.JWTSecret, time.Duration(cli.cfg.JWTExpireHours)*time.Hour)
			token, err := verifier.Issue(&id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&id.Subject, "subject", "", "Stable user id")
	cmd.Flags().StringVar(&id.DisplayName, "name", "", "Display name shown on reports")
	cmd.Flags().StringVar(&id.ContactAddress, "email", "", "Contact address, used when no name is set")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func (cli *CLI) runReport(ctx context.Context, cmd *cobra.Command, flags reportFlags) error {
	form := reports.SubmitForm{
		ItemName:         flags.item,
		FoundLocation:    flags.found,
		RetrieveLocation: flags.retrieve,
		Details:          flags.details,
	}

	// Check the form before dialling anything so a typo costs nothing
	if err := reports.Validate(form); err != nil {
		return err
	}

	if flags.token != "" {
		verifier, err := identity.NewVerifier(ctx, cli.cfg)
		if err != nil {
			return fmt.Errorf("identity provider: %w", err)
		}
		id, err := verifier.Verify(ctx, flags.token)
		if err != nil {
			return fmt.Errorf("token rejected: %w", err)
		}
		ctx = identity.WithIdentity(ctx, id)
	}

	var uploader reports.Uploader = noUploader{}
	if flags.image != "" {
		cld, err := cloudinary.NewService(
			cli.cfg.CloudinaryCloudName,
			cli.cfg.CloudinaryAPIKey,
			cli.cfg.CloudinaryAPISecret,
			cli.cfg.CloudinaryUploadFolder,
		)
		if err != nil {
			return fmt.Errorf("object store: %w", err)
		}
		uploader = media.NewPipeline(cld, cli.log)
	}

	db, err := database.Connect(cli.cfg.MongoURI, cli.cfg.MongoDB)
	if err != nil {
		return err
	}
	defer db.Disconnect(context.Background())

	service := reports.NewService(identity.ContextProvider{}, uploader, reports.NewRepository(db.Database), cli.log)
	report, err := service.Submit(ctx, form, flags.image)
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), report)
	return nil
}

func (cli *CLI) runFeed(ctx context.Context, cmd *cobra.Command, asJSON bool) error {
	db, err := database.Connect(cli.cfg.MongoURI, cli.cfg.MongoDB)
	if err != nil {
		return err
	}
	defer db.Disconnect(context.Background())

	snapshot, err := feed.NewService(reports.NewRepository(db.Database), cli.log).Snapshot(ctx)
	if err != nil {
		return err
	}

	return printFeed(cmd.OutOrStdout(), snapshot, asJSON)
}

// noUploader stands in when no image was given; Submit never calls it then
type noUploader struct{}

func (noUploader) Upload(context.Context, string) (string, error) {
	return "", errors.New("no object store configured")
}
