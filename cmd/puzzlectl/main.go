// Command puzzlectl is a local companion for puzzle authors: it lists scene
// kinds, prints default content, previews and validates documents, and mints
// development tokens.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/puzzle-platform/internal/auth/jwt"
	"github.com/gokatarajesh/puzzle-platform/internal/game"
	"github.com/gokatarajesh/puzzle-platform/internal/publish"
	"github.com/gokatarajesh/puzzle-platform/internal/scene"
	"github.com/gokatarajesh/puzzle-platform/internal/wordcheck"
)

// errInvalid signals that a document was read but failed checks. The issues
// have already been printed.
var errInvalid = errors.New("document is not valid")

func main() {
	_ = godotenv.Load("configs/.env")

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "puzzlectl",
		Short:         "Inspect and validate puzzle games",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newKindsCmd(),
		newDefaultCmd(),
		newPreviewCmd(),
		newValidateCmd(),
		newTokenCmd(),
	)
	return root
}

// kindsCmd lists every scene kind with the preview of its default content.
func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List scene kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, k := range scene.Kinds() {
				c, err := scene.DefaultContent(k)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-14s %s\n", k, scene.Preview(c))
			}
			return nil
		},
	}
}

func newDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default KIND",
		Short: "Print the default content document for a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := scene.ParseKind(args[0])
			if err != nil {
				return err
			}
			c, err := scene.DefaultContent(kind)
			if err != nil {
				return err
			}
			doc, err := scene.MarshalContent(c)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(doc))
			return nil
		},
	}
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [FILE]",
		Short: "Print the one-line preview of a content document",
		Long:  "Reads a tagged content document from FILE, or stdin when FILE is omitted or \"-\".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			c, err := scene.UnmarshalContent(data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), scene.Preview(c))
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	var (
		publishable bool
		wordsPath   string
	)
	cmd := &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Validate a game document",
		Long: `Decodes a game document and reports every structural issue.

With --publishable the publish checks also run: title, at least one scored
scene, complete scene content, and word lists when --words is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			g, err := game.Decode(data)
			if err == nil && publishable {
				err = checkPublishable(g, wordsPath)
			}
			var verr *game.ValidationError
			if errors.As(err, &verr) {
				for _, is := range verr.Issues {
					fmt.Fprintf(out, "%s: %s\n", is.Path, is.Message)
				}
				return errInvalid
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "ok: %q, %d scenes\n", g.Meta.Title, len(g.Scenes))
			return nil
		},
	}
	cmd.Flags().BoolVar(&publishable, "publishable", false, "also run publish checks")
	cmd.Flags().StringVar(&wordsPath, "words", "", "word list YAML used for dictionary and profanity checks")
	return cmd
}

// checkPublishable runs the publish endpoint's checks. Check never touches
// the repository, so none is wired.
func checkPublishable(g game.Game, wordsPath string) error {
	var opts publish.Options
	if wordsPath != "" {
		words, err := wordcheck.Load(wordsPath)
		if err != nil {
			return err
		}
		opts.Words = words
	}
	return publish.NewService(nil, opts, zerolog.Nop()).Check(g)
}

func newTokenCmd() *cobra.Command {
	var (
		userID string
		name   string
		guest  bool
		ttl    time.Duration
		issuer string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token",
		Long:  "Signs an access token with JWT_SECRET. Intended for local testing only.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			id := uuid.New()
			if userID != "" {
				parsed, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("parse --user: %w", err)
				}
				id = parsed
			}
			tokens := jwt.NewManager(jwt.TokenConfig{Secret: []byte(secret), AccessTTL: ttl, Issuer: issuer})
			token, err := tokens.GenerateAccessToken(jwt.User{ID: id, DisplayName: name, IsGuest: guest})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (random when empty)")
	cmd.Flags().StringVar(&name, "name", "dev", "display name")
	cmd.Flags().BoolVar(&guest, "guest", false, "mint a guest token (cannot publish)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	cmd.Flags().StringVar(&issuer, "issuer", "puzzle-platform", "issuer, must match APP_NAME of the server")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}
