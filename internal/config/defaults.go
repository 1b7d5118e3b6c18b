package config

// Default returns the built-in provisioning manifest: the fixed list of CLI tools
// every workstation gets, the tiered fallback tools, the bundled dotfiles, and the
// two optional AI extras. A YAML manifest passed via --config overrides any of
// these sections.
func Default() Config {
	return Config{
		Packages: []PackageSpec{
			{Name: "git"},
			{Name: "curl"},
			{Name: "wget"},
			{Name: "tmux"},
			{Name: "htop"},
			{Name: "jq"},
			{Name: "tree"},
			{Name: "unzip"},
			{Name: "rg", Overrides: map[string]string{
				"homebrew": "ripgrep",
				"apt":      "ripgrep",
				"dnf":      "ripgrep",
				"pacman":   "ripgrep",
				"zypper":   "ripgrep",
			}},
			// fd ships under a different package name on Debian and Fedora.
			{Name: "fd", Overrides: map[string]string{
				"apt": "fd-find",
				"dnf": "fd-find",
			}},
			{Name: "bat"},
			{Name: "nvim", Overrides: map[string]string{
				"homebrew": "neovim",
				"apt":      "neovim",
				"dnf":      "neovim",
				"pacman":   "neovim",
				"zypper":   "neovim",
			}},
		},

		// The three shell-enhancement tools share one tiered install policy:
		// Homebrew formula when the manager is Homebrew, vendor script otherwise.
		Fallbacks: []FallbackTool{
			{
				Name:      "zoxide", // smarter directory jumping
				Formula:   "zoxide",
				ScriptURL: "https://raw.githubusercontent.com/ajeetdsouza/zoxide/main/install.sh",
			},
			{
				Name:      "atuin", // shell history search
				Formula:   "atuin",
				ScriptURL: "https://setup.atuin.sh",
			},
			{
				Name:      "starship", // prompt renderer
				Formula:   "starship",
				ScriptURL: "https://starship.rs/install.sh",
			},
		},

		// Empty sources select the dotfiles embedded in the binary, so the
		// default manifest works from any working directory.
		Dotfiles: Dotfiles{
			Profile: ".zshrc",
			Theme:   "starship.toml",
		},

		Extras: Extras{
			ModelRunner: ModelRunner{
				Name:         "ollama",
				ScriptURL:    "https://ollama.com/install.sh",
				DefaultModel: "llama3.2",
			},
			PromptToolkit: PromptToolkit{
				Name:      "fabric",
				Formula:   "fabric-ai",
				ScriptURL: "https://raw.githubusercontent.com/danielmiessler/fabric/main/scripts/installer/install.sh",
				ConfigDir: "fabric",
				Helpers: []HelperFile{
					{
						URL:  "https://raw.githubusercontent.com/danielmiessler/fabric/main/scripts/yt/yt",
						File: "yt",
					},
					{
						URL:  "https://raw.githubusercontent.com/danielmiessler/fabric/main/scripts/ts/ts",
						File: "ts",
					},
				},
			},
		},
	}
}
