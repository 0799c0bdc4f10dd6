package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"

	"clipcast/internal/api"
	"clipcast/internal/config"
	"clipcast/internal/logging"
)

const VERSION = "1.0.0"

const keyringService = "clipcast"

func usage() {
	fmt.Println(BulletStyle.Render("├") + TextStyle.Render("Usage: clipcast [options] [url-or-audio-file]"))
	fmt.Println(BulletStyle.Render("│"))
	fmt.Println(BulletStyle.Render("├") + TextStyle.Render("Options:"))
	fmt.Println(BulletStyle.Render("├────") + TextStyle.Render("--privacy") + DimTextStyle.Render("      default visibility: public, unlisted or private"))
	fmt.Println(BulletStyle.Render("├────") + TextStyle.Render("--duration") + DimTextStyle.Render("     target clip length in seconds for URL sources (20-40)"))
	fmt.Println(BulletStyle.Render("├────") + TextStyle.Render("--api") + DimTextStyle.Render("          backend base URL (default http://localhost:5000)"))
	fmt.Println(BulletStyle.Render("├────") + TextStyle.Render("--set-token") + DimTextStyle.Render("    store a backend API token in the system keyring"))
	fmt.Println(BulletStyle.Render("├────") + TextStyle.Render("--clear-token") + DimTextStyle.Render("  remove the stored token"))
	fmt.Println(BulletStyle.Render("│"))
	fmt.Println(BulletStyle.Render("├") + TextStyle.Render("Requirements:"))

	dependencies := []string{"mpv"}
	for _, dependency := range dependencies {
		status := "✔ installed"
		if !checkDependency(dependency) {
			status = "✗ missing (preview playback disabled)"
		}
		spaces := strings.Repeat(" ", 10-len(dependency))
		fmt.Println(BulletStyle.Render("├────") + TextStyle.Render(dependency) + DimTextStyle.Render(spaces+status))
	}

	fmt.Println(BulletStyle.Render("│"))
	fmt.Println(BulletStyle.Render("└") + TextStyle.Render("Audio formats:") + DimTextStyle.Render(" .mp3, .wav, .ogg, .m4a, .flac, .aac"))
}

func main() {
	fmt.Println(BulletStyle.Render("┌") + TitleStyle.Render("clipcast"))

	godotenv.Load()

	var privacy string
	var duration int
	var apiURL string
	var setToken bool
	var clearToken bool
	var help bool
	var version bool

	flag.StringVar(&privacy, "privacy", "", "Default visibility for published shorts (public, unlisted, private)")
	flag.IntVar(&duration, "duration", 0, "Target clip length in seconds for URL sources (20-40)")
	flag.StringVar(&apiURL, "api", "", "Backend base URL")
	flag.BoolVar(&setToken, "set-token", false, "Store a backend API token in the system keyring")
	flag.BoolVar(&clearToken, "clear-token", false, "Remove the stored backend API token")
	flag.BoolVar(&help, "help", false, "Show usage info")
	flag.BoolVar(&version, "version", false, "Show version info")
	flag.Usage = usage
	flag.Parse()

	if help {
		flag.Usage()
		os.Exit(0)
	}

	if version {
		fmt.Println(BulletStyle.Render("└") + TextStyle.Render(VERSION))
		os.Exit(0)
	}

	username := getSystemUser()

	if clearToken {
		if err := keyring.Delete(keyringService, username); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			fmt.Println(BulletStyle.Render("└") + TextStyle.Render("Error clearing the token: "+err.Error()))
			os.Exit(1)
		}
		fmt.Println(BulletStyle.Render("└") + TextStyle.Render("Token cleared."))
		os.Exit(0)
	}

	if setToken {
		fmt.Print(BulletStyle.Render("├") + TextStyle.Render("Backend API token: "))
		byteToken, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			fmt.Println("Error reading token:", err)
			os.Exit(1)
		}

		token := strings.TrimSpace(string(byteToken))
		if token == "" {
			fmt.Println(BulletStyle.Render("└") + TextStyle.Render("Nothing stored: the token was empty."))
			os.Exit(1)
		}

		if err := keyring.Set(keyringService, username, token); err != nil {
			fmt.Println("Error saving token:", err)
			os.Exit(1)
		}
		fmt.Println(BulletStyle.Render("└") + TextStyle.Render("Token stored."))
		os.Exit(0)
	}

	cfgPath, _ := config.Path()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Println(BulletStyle.Render("└") + TextStyle.Render("Config error: "+err.Error()))
		os.Exit(1)
	}

	// Flags win over the file and the environment.
	if privacy != "" {
		cfg.Privacy = strings.ToLower(privacy)
	}
	if duration != 0 {
		cfg.ClipSeconds = duration
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println(BulletStyle.Render("└") + TextStyle.Render("Config error: "+err.Error()))
		os.Exit(1)
	}

	if cfg.APIToken == "" {
		token, err := keyring.Get(keyringService, username)
		if err == nil {
			cfg.APIToken = token
		} else if !errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("Error reading the stored token:", err)
		}
	}

	var input string
	args := flag.Args()
	switch len(args) {
	case 0:
	case 1:
		input = args[0]
		if input == "help" {
			flag.Usage()
			os.Exit(0)
		}
		if !isVideoURL(input) {
			if _, err := os.Stat(input); os.IsNotExist(err) {
				fmt.Printf(BulletStyle.Render("└")+TextStyle.Render("Error: file '%s' does not exist.")+"\n", input)
				os.Exit(1)
			}
			if !isAudioFile(input) {
				fmt.Printf(BulletStyle.Render("└")+TextStyle.Render("Error: file '%s' is not a supported audio file.")+"\n", input)
				os.Exit(1)
			}
		}
	default:
		flag.Usage()
		os.Exit(0)
	}

	logger, closeLog, err := logging.New(cfg.DebugLog)
	if err != nil {
		fmt.Println(BulletStyle.Render("└") + TextStyle.Render("Log error: "+err.Error()))
		os.Exit(1)
	}
	defer closeLog()

	client := api.NewClient(api.ClientConfig{
		BaseURL:      cfg.APIBaseURL,
		Token:        cfg.APIToken,
		Timeout:      cfg.RequestTimeout,
		MediaTimeout: cfg.MediaTimeout,
	}, logger)

	p := tea.NewProgram(
		newModel(cfg, client, logger, input, demoAnalysisDelay),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
	}
}

func getSystemUser() string {
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME") // Windows fallback
	}
	if username == "" {
		username = "anon"
	}
	return username
}
