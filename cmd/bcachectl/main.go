package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hamishcoleman/cli-bcachectl/internal/bcache"
	"github.com/hamishcoleman/cli-bcachectl/internal/config"
	"github.com/hamishcoleman/cli-bcachectl/internal/render"
	"github.com/hamishcoleman/cli-bcachectl/internal/trie"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to config file")
	minlen := flag.Int("minlen", 0, "Minimum length for shortened identifiers (overrides config)")
	verbose := flag.Bool("v", false, "Increase verbosity")
	noColor := flag.Bool("no-color", false, "Disable colorized output")
	asYAML := flag.Bool("yaml", false, "Dump records as YAML instead of formatting them")
	showVersion := flag.Bool("version", false, "Show version information")
	showHelp := flag.Bool("help", false, "Show help message")

	flag.Parse()

	if *showHelp {
		showUsage()
		os.Exit(0)
	}
	if *showVersion {
		fmt.Println("bcachectl v" + version)
		os.Exit(0)
	}

	setupLogging(*verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *minlen > 0 {
		cfg.MinLen = *minlen
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if !*verbose {
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
	}
	if *noColor || !cfg.Color || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	args := flag.Args()
	subcommand := "show"
	if len(args) > 0 {
		subcommand = args[0]
		args = args[1:]
	}

	switch subcommand {
	case "show":
		err = runShow(cfg, *asYAML)
	case "list":
		err = runList(cfg, *asYAML, args)
	case "prefixes":
		err = runPrefixes(args)
	case "config":
		err = runConfig(cfg)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", subcommand)
		showUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", subcommand).Msg("Command failed")
	}
}

func showUsage() {
	helpText := `bcachectl - show the bcache device hierarchy

Usage:
  bcachectl [flags] [command] [arguments]

Flags:
  --config string   Path to config file
  --minlen int      Minimum length for shortened identifiers
  --no-color        Disable colorized output
  --yaml            Dump records as YAML (show, list)
  -v                Increase verbosity
  --version         Show version information
  --help            Show this help message

Commands:
  show                Show the device tree (default)
  list                List device records one per line
    --all               Include block-class devices with a bcache attribute
    --filter EXPR       Keep records matching a boolean expression over
                        type, path, id and parent
  prefixes WORD...    Show minimal unique prefixes for the given words
    --minlen N          Minimum prefix length
    --find P            Resolve the prefix P against the words instead
  config              Show current configuration
`
	fmt.Print(helpText)
}

func setupLogging(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func scanner(cfg *config.Config) *bcache.Sysfs {
	return &bcache.Sysfs{
		FSRoot:    cfg.Sysfs.BcacheRoot,
		BlockRoot: cfg.Sysfs.BlockRoot,
	}
}

func runShow(cfg *config.Config, asYAML bool) error {
	devices, err := scanner(cfg).Discover()
	if err != nil {
		return err
	}
	if asYAML {
		return render.DumpYAML(os.Stdout, devices)
	}
	tree := render.NewTree(devices, cfg.MinLen)
	return tree.Render(os.Stdout)
}

func runList(cfg *config.Config, asYAML bool, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	all := fs.Bool("all", false, "Include block-class devices with a bcache attribute")
	filter := fs.String("filter", "", "Boolean expression over type, path, id and parent")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sys := scanner(cfg)
	devices, err := sys.Discover()
	if err != nil {
		return err
	}
	if *all {
		blocks, err := sys.Blocks()
		if err != nil {
			return err
		}
		devices = append(devices, blocks...)
	}

	devices, err = render.Filter(devices, *filter)
	if err != nil {
		return err
	}
	if asYAML {
		return render.DumpYAML(os.Stdout, devices)
	}
	return render.List(os.Stdout, devices)
}

func runPrefixes(args []string) error {
	fs := flag.NewFlagSet("prefixes", flag.ExitOnError)
	minlen := fs.Int("minlen", 0, "Minimum prefix length")
	find := fs.String("find", "", "Resolve a prefix instead of listing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	words := fs.Args()
	if len(words) == 0 {
		return fmt.Errorf("prefixes requires at least one word")
	}

	t := trie.New()
	for _, word := range words {
		t.Insert(word)
	}

	if *find == "" {
		for _, prefix := range t.Prefixes(*minlen) {
			fmt.Println(prefix)
		}
		return nil
	}

	res := t.Find(*find)
	switch res.Kind {
	case trie.UniqueMatch:
		fmt.Println(res.Key)
	case trie.AmbiguousMatch:
		for _, prefix := range res.Branch.Prefixes(0) {
			fmt.Println(*find + res.Prefix + prefix)
		}
	default:
		return fmt.Errorf("no word starts with %q", *find)
	}
	return nil
}

func runConfig(cfg *config.Config) error {
	fmt.Println("Current configuration:")
	fmt.Printf("minlen: %d\n", cfg.MinLen)
	fmt.Printf("log_level: %s\n", cfg.LogLevel)
	fmt.Printf("color: %t\n", cfg.Color)
	fmt.Printf("sysfs.bcache_root: %s\n", cfg.Sysfs.BcacheRoot)
	fmt.Printf("sysfs.block_root: %s\n", cfg.Sysfs.BlockRoot)
	return nil
}
