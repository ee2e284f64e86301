package commands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mtodo/internal/infrastructure/config"
	"mtodo/pkg/filesystem"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage mtodo configuration settings.

Configuration is stored in YAML format at:
  ~/.config/mtodo/config.yml

A TOML file can be used instead with --config path/to/config.toml.
MTODO_DATA_DIR, MTODO_STORAGE_DRIVER, MTODO_PROFILE, MTODO_LOG_LEVEL and
MTODO_REMINDER_INTERVAL override the file.

Examples:
  # Show effective configuration
  mtodo config show

  # Edit config in editor
  mtodo config edit

  # Show config file location
  mtodo config path

  # Write a fresh default config
  mtodo config init --force`,
	Annotations: map[string]string{annotationNoContainer: "true"},
}

// configShowCmd shows the effective configuration
var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show effective configuration",
	Annotations: map[string]string{annotationNoContainer: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := configLoader()
		if err != nil {
			return err
		}
		loaded, err := loader.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if formatter.IsStructured() {
			return formatter.Print(loaded)
		}
		data, err := yaml.Marshal(loaded)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

// configEditCmd opens the config file in an editor
var configEditCmd = &cobra.Command{
	Use:         "edit",
	Short:       "Edit config in editor",
	Annotations: map[string]string{annotationNoContainer: "true"},
	Long: `Open the configuration file in your default editor.

The editor is determined by the EDITOR environment variable (default: vi).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := configLoader()
		if err != nil {
			return err
		}
		path := loader.GetConfigPath()

		if ok, err := filesystem.Exists(path); err != nil {
			return err
		} else if !ok {
			if err := loader.Save(config.Default()); err != nil {
				return err
			}
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		printer.Info("Opening config file: %s", path)
		printer.Subtle("Editor: %s", editor)

		editorCmd := exec.Command(editor, path)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr
		if err := editorCmd.Run(); err != nil {
			return fmt.Errorf("failed to run editor: %w", err)
		}

		if _, err := loader.Load(); err != nil {
			printer.Warning("Config no longer loads: %v", err)
			return nil
		}
		printer.Success("Config file edited")
		return nil
	},
}

// configPathCmd shows the config file path
var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Show config file location",
	Annotations: map[string]string{annotationNoContainer: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := configLoader()
		if err != nil {
			return err
		}
		fmt.Println(loader.GetConfigPath())
		return nil
	},
}

// configInitCmd writes the default configuration
var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write the default configuration",
	Annotations: map[string]string{annotationNoContainer: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		loader, err := configLoader()
		if err != nil {
			return err
		}
		path := loader.GetConfigPath()

		exists, err := filesystem.Exists(path)
		if err != nil {
			return err
		}
		if exists && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}

		if err := loader.Save(config.Default()); err != nil {
			return err
		}
		printer.Success("Wrote default config to %s", path)
		return nil
	},
}

// configLoader honours --config
func configLoader() (*config.Loader, error) {
	if configPath != "" {
		return config.NewLoaderFrom(configPath), nil
	}
	loader, err := config.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader, nil
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config")
}
