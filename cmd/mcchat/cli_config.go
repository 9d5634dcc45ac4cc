package main

import (
	"os"

	"github.com/joho/godotenv"
	configpkg "github.com/minhyannv/mcchat/pkg/config"
	"github.com/spf13/cobra"
)

// cliFlags are the persistent flags shared by every subcommand.
type cliFlags struct {
	configPath        string
	conversationsFile string
	promptFile        string
	markdown          bool
	verbose           bool
}

func (f *cliFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", configpkg.DefaultConfigFile, "YAML config file (ignored when missing)")
	pf.StringVar(&f.conversationsFile, "conversations", configpkg.DefaultConversationsFile, "Conversation history file")
	pf.StringVar(&f.promptFile, "prompt-file", configpkg.DefaultPromptFile, "Saved system prompt file")
	pf.BoolVar(&f.markdown, "markdown", false, "Render answers as markdown")
	pf.BoolVar(&f.verbose, "verbose", false, "Verbose debug logging")
}

// loadCLIConfig layers defaults, the YAML file, .env plus the environment, and
// explicitly set flags, in that order.
func loadCLIConfig(cmd *cobra.Command, f *cliFlags) (configpkg.Config, error) {
	_ = godotenv.Load()

	cfg := configpkg.DefaultConfig()
	file, err := configpkg.LoadFile(f.configPath)
	if err != nil {
		return cfg, err
	}
	cfg = configpkg.ApplyFile(cfg, file)
	cfg = configpkg.ApplyEnv(cfg, os.Getenv)

	flags := cmd.Flags()
	if flags.Changed("conversations") {
		cfg.ConversationsFile = f.conversationsFile
	}
	if flags.Changed("prompt-file") {
		cfg.PromptFile = f.promptFile
	}
	if flags.Changed("markdown") {
		cfg.Markdown = f.markdown
	}
	cfg.Verbose = f.verbose
	return configpkg.Normalize(cfg), nil
}
