package cmd

import (
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/avencia/chatframe/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage API profiles and chat options",
	Long:  `Manage API profiles and the chat options (visibility, indicator, voice, speech) used by the transcript host.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		for name, profile := range cfg.Profiles {
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			fmt.Printf("    Model: %s\n", profile.Model)
			if profile.BaseURL != "" {
				fmt.Printf("    Base URL: %s\n", profile.BaseURL)
			}
			key := "not set"
			if profile.APIKey != "" {
				key = "set"
			}
			fmt.Printf("    API Key: %s\n", key)
		}

		fmt.Println("\nChat options:")
		fmt.Printf("  Hide all hidden entities: %v\n", cfg.Chat.HideAllHidden)
		if len(cfg.Chat.HiddenSubtypes) > 0 {
			fmt.Printf("  Hidden subtypes suppressed: %v\n", cfg.Chat.HiddenSubtypes)
		}
		fmt.Printf("  Typing indicator: %s\n", indicatorLabel(cfg.Chat.Indicator))
		fmt.Printf("  Voice trigger phrase: %q\n", cfg.TriggerPhrase())
		fmt.Printf("  Speech muted: %v\n", cfg.Chat.Muted)
		fmt.Printf("  Markdown rendering: %v\n", cfg.Chat.Markdown)
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		name := nameFromArgsOrPrompt(args, "Profile name")
		if _, exists := cfg.Profiles[name]; exists {
			log.Fatalf("Profile '%s' already exists", name)
		}

		profile, err := promptProfile(config.Profile{Model: "gpt-4o-mini"})
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.Profiles[name] = profile
		saveConfigOrDie(cfg)
		fmt.Printf("Profile '%s' added\n", name)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		name := nameFromArgsOrSelect(args, cfg, "Select profile to edit")
		current, exists := cfg.Profiles[name]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", name)
		}

		profile, err := promptProfile(current)
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.Profiles[name] = profile
		saveConfigOrDie(cfg)
		fmt.Printf("Profile '%s' updated\n", name)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		name := nameFromArgsOrSelect(args, cfg, "Select profile to delete")
		if _, exists := cfg.Profiles[name]; !exists {
			log.Fatalf("Profile '%s' does not exist", name)
		}

		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'? (y/N)", name),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		delete(cfg.Profiles, name)
		if cfg.ActiveProfile == name {
			cfg.ActiveProfile = "default"
			for other := range cfg.Profiles {
				cfg.ActiveProfile = other
				break
			}
			if len(cfg.Profiles) == 0 {
				cfg.Profiles["default"] = config.Profile{Model: "gpt-4o-mini"}
			}
		}

		saveConfigOrDie(cfg)
		fmt.Printf("Profile '%s' deleted\n", name)
	},
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Edit chat options interactively",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		hideSelect := promptui.Select{
			Label: "Hidden entities",
			Items: []string{"hide all", "show all"},
		}
		hideIdx, _, err := hideSelect.Run()
		if err != nil {
			log.Fatalf("Selection failed: %v", err)
		}
		cfg.Chat.HideAllHidden = hideIdx == 0

		indicatorSelect := promptui.Select{
			Label: "Typing indicator",
			Items: []string{"automatic", "manual", "none"},
		}
		_, indicator, err := indicatorSelect.Run()
		if err != nil {
			log.Fatalf("Selection failed: %v", err)
		}
		cfg.Chat.Indicator = indicator

		trigger := promptui.Prompt{
			Label:   "Voice trigger phrase",
			Default: cfg.TriggerPhrase(),
		}
		cfg.Chat.TriggerPhrase, err = trigger.Run()
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.Chat.Muted = confirmFlag("Mute speech output", cfg.Chat.Muted)
		cfg.Chat.Markdown = confirmFlag("Render assistant markdown", cfg.Chat.Markdown)

		saveConfigOrDie(cfg)
		fmt.Println("Chat options updated")
	},
}

// promptProfile collects the three profile fields, prefilled with defaults.
func promptProfile(defaults config.Profile) (config.Profile, error) {
	prompts := []struct {
		label   string
		dest    *string
		initial string
		mask    rune
	}{
		{"API Key", &defaults.APIKey, defaults.APIKey, '*'},
		{"Model", &defaults.Model, defaults.Model, 0},
		{"Base URL (optional)", &defaults.BaseURL, defaults.BaseURL, 0},
	}
	for _, p := range prompts {
		prompt := promptui.Prompt{Label: p.label, Default: p.initial, Mask: p.mask}
		value, err := prompt.Run()
		if err != nil {
			return config.Profile{}, err
		}
		*p.dest = value
	}
	return defaults, nil
}

func nameFromArgsOrPrompt(args []string, label string) string {
	if len(args) > 0 {
		return args[0]
	}
	prompt := promptui.Prompt{Label: label}
	name, err := prompt.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}
	return name
}

func nameFromArgsOrSelect(args []string, cfg *config.Config, label string) string {
	if len(args) > 0 {
		return args[0]
	}
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		names = append(names, name)
	}
	if len(names) == 0 {
		log.Fatalf("No profiles available")
	}
	sel := promptui.Select{Label: label, Items: names}
	_, name, err := sel.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

func confirmFlag(label string, current bool) bool {
	state := "off"
	if current {
		state = "on"
	}
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s (currently %s)? (y/N)", label, state),
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

func indicatorLabel(mode string) string {
	if mode == "" {
		return "automatic"
	}
	return mode
}

func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func saveConfigOrDie(cfg *config.Config) {
	if err := cfg.Save(); err != nil {
		log.Fatalf("Failed to save config: %v", err)
	}
}

func init() {
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(optionsCmd)
}
