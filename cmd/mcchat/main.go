// Package main is the mcchat command-line chat client.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/minhyannv/mcchat/pkg/chat"
	configpkg "github.com/minhyannv/mcchat/pkg/config"
	loggerpkg "github.com/minhyannv/mcchat/pkg/logger"
	"github.com/minhyannv/mcchat/pkg/session"
	"github.com/minhyannv/mcchat/pkg/store"
	"github.com/minhyannv/mcchat/pkg/ui"
	"github.com/spf13/cobra"
)

// main is the program entry point.
func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:   "mcchat",
		Short: "Chat with an OpenAI-compatible model and keep your conversations",
		Long: `mcchat relays your messages to a chat-completion endpoint and keeps the
conversation history and a reusable system prompt in local JSON files.

Environment:
  API_KEY     API key (required)
  API_URL     chat-completion endpoint (default ` + configpkg.DefaultAPIURL + `)
  MODEL       model name (default ` + configpkg.DefaultModel + `)
  API_CLIENT  "sdk" (default) or "http"

Run without arguments to start the interactive chat.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, flags, in, out, errOut)
		},
	}
	flags.register(root)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(
		newListCmd(flags, errOut),
		newDeleteCmd(flags, errOut),
		newPromptCmd(flags, errOut),
	)
	return root
}

func runChat(cmd *cobra.Command, flags *cliFlags, in io.Reader, out, errOut io.Writer) error {
	cfg, err := loadCLIConfig(cmd, flags)
	if err != nil {
		return err
	}
	if err := configpkg.Validate(cfg); err != nil {
		return err
	}

	appLogger := loggerpkg.New(errOut, cfg.Verbose)
	defer loggerpkg.Sync(appLogger)
	loggerpkg.Debug(cfg.Verbose, appLogger, "chat start", map[string]any{
		"api_url":       cfg.APIURL,
		"model":         cfg.Model,
		"client":        cfg.Client,
		"conversations": cfg.ConversationsFile,
		"prompt_file":   cfg.PromptFile,
		"markdown":      cfg.Markdown,
	})

	client, err := chat.New(cfg, chat.WithLogger(appLogger))
	if err != nil {
		return err
	}

	sess, err := session.New(
		store.NewConversationStore(cfg.ConversationsFile, appLogger),
		store.NewPromptStore(cfg.PromptFile, appLogger),
		client,
		in,
		out,
		session.WithLogger(appLogger, cfg.Verbose),
		session.WithRenderer(ui.NewRenderer(cfg.Markdown)),
	)
	if err != nil {
		return err
	}
	return sess.Run(cmd.Context())
}

func newListCmd(flags *cliFlags, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			convs, _, err := openConversations(cmd, flags, errOut)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if convs.Len() == 0 {
				_, _ = fmt.Fprintln(out, ui.DimStyle.Render("No saved conversations."))
				return nil
			}
			for _, conv := range convs.List() {
				_, _ = fmt.Fprintln(out, ui.ConversationLine(conv))
			}
			return nil
		},
	}
}

func newDeleteCmd(flags *cliFlags, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved conversation by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("invalid conversation id %q", args[0])
			}

			convs, appLogger, err := openConversations(cmd, flags, errOut)
			if err != nil {
				return err
			}
			defer loggerpkg.Sync(appLogger)

			out := cmd.OutOrStdout()
			found, err := convs.Delete(id)
			if err != nil {
				return fmt.Errorf("delete conversation %d: %w", id, err)
			}
			if !found {
				_, _ = fmt.Fprintln(out, ui.ErrorStyle.Render(fmt.Sprintf("No conversation with id %d", id)))
				return nil
			}
			loggerpkg.Info(appLogger, "conversation deleted", map[string]any{
				"id":   id,
				"path": convs.Path(),
			})
			_, _ = fmt.Fprintln(out, ui.SuccessStyle.Render(fmt.Sprintf("Conversation %d deleted!", id)))
			return nil
		},
	}
}

func newPromptCmd(flags *cliFlags, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt [text]",
		Short: "Show the saved system prompt, or save a new one",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCLIConfig(cmd, flags)
			if err != nil {
				return err
			}
			prompts := store.NewPromptStore(cfg.PromptFile, loggerpkg.New(errOut, cfg.Verbose))

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				prompt, ok := prompts.Get()
				if !ok {
					_, _ = fmt.Fprintln(out, ui.DimStyle.Render("No saved system prompt."))
					return nil
				}
				_, _ = fmt.Fprintln(out, prompt)
				return nil
			}

			if err := prompts.Save(strings.Join(args, " ")); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, ui.SuccessStyle.Render("System prompt saved!"))
			return nil
		},
	}
}

// openConversations loads the collection strictly: a corrupt file is an
// error here, so a delete can never overwrite it with an empty list.
func openConversations(cmd *cobra.Command, flags *cliFlags, errOut io.Writer) (*store.ConversationStore, loggerpkg.Logger, error) {
	cfg, err := loadCLIConfig(cmd, flags)
	if err != nil {
		return nil, nil, err
	}
	appLogger := loggerpkg.New(errOut, cfg.Verbose)
	convs := store.NewConversationStore(cfg.ConversationsFile, appLogger)
	if err := convs.Load(); err != nil {
		return nil, nil, err
	}
	return convs, appLogger, nil
}
