package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/wandcode/mfc-extract-keys/cmd/mfckeys/internal/config"
	"github.com/wandcode/mfc-extract-keys/pkg/mifare"
)

const version = "0.3"

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [-m|-p] [options] <input_file>\n", prog)
	fmt.Fprintf(os.Stderr, "       %s [-m|-p] -r <reader_index> [options]\n", prog)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  -m            convert a raw dump to the mfocGUI key format")
	fmt.Fprintln(os.Stderr, "  -p            convert a raw dump to the proxmark key format")
	fmt.Fprintln(os.Stderr, "  -r <index>    read the card in the given PC/SC reader instead of a file")
	fmt.Fprintln(os.Stderr, "  -key <hex>    12-hex-char sector key for -r (prompted if omitted)")
	fmt.Fprintln(os.Stderr, "  -key-b        authenticate with key B instead of key A")
	fmt.Fprintln(os.Stderr, "  -save <file>  also save the raw dump read via -r")
	fmt.Fprintln(os.Stderr, "  -o <dir>      output directory for key files (default: .)")
	fmt.Fprintln(os.Stderr, "  -config <file> optional YAML config")
	fmt.Fprintln(os.Stderr, "  -v            enable debug logging")
	fmt.Fprintln(os.Stderr, "  -log-format   log format: text or json")
	fmt.Fprintln(os.Stderr, "  -version      print the version and exit")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Example: %s -m mycard.mfd\n", prog)
}

func main() {
	mfocGUI := flag.Bool("m", false, "convert a raw dump to the mfocGUI key format")
	proxmark := flag.Bool("p", false, "convert a raw dump to the proxmark key format")
	readerIdx := flag.Int("r", -1, "PC/SC reader index to read the card from")
	keyHex := flag.String("key", "", "12-hex-char sector key for -r")
	useKeyB := flag.Bool("key-b", false, "authenticate with key B instead of key A")
	savePath := flag.String("save", "", "also save the raw dump read via -r")
	outDir := flag.String("o", "", "output directory for key files")
	configPath := flag.String("config", "", "optional YAML config path")
	verbose := flag.Bool("v", false, "enable debug logging")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Usage = usage
	flag.Parse()

	// Configure slog
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if *logFormat == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
	}

	if *showVersion {
		fmt.Println(version)
		return
	}

	if *mfocGUI == *proxmark {
		// Either no mode or both modes were given.
		usage()
		os.Exit(1)
	}

	var cfg *config.Config
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("config load failed: %v", err)
		}
	}

	dir := *outDir
	if dir == "" && cfg != nil {
		dir = cfg.Output.Directory
	}
	if dir == "" {
		dir = "."
	}

	var raw []byte
	if idx := resolveReaderIndex(*readerIdx, cfg); idx >= 0 {
		raw = readFromCard(idx, *keyHex, *useKeyB, *savePath, cfg)
	} else {
		input := flag.Arg(0)
		if input == "" {
			usage()
			os.Exit(1)
		}
		var err error
		raw, err = os.ReadFile(input)
		if err != nil {
			log.Fatalf("read dump failed: %v", err)
		}
		slog.Debug("dump loaded", "path", input, "bytes", len(raw))
	}

	table, err := mifare.Decode(raw)
	if err != nil {
		log.Fatalf("decode failed: %v", err)
	}

	mifare.PrintKeyTable(os.Stdout, table)
	fmt.Println()

	if *mfocGUI {
		aKeys, bKeys := mifare.EncodeMfocGUI(table)
		aName, bName := mifare.MfocGUIFilenames(table.UID)
		writeKeys(filepath.Join(dir, aName), aKeys)
		writeKeys(filepath.Join(dir, bName), bKeys)
	} else {
		out := mifare.EncodeProxmark(table)
		writeKeys(filepath.Join(dir, mifare.ProxmarkFilename(table.UID)), out)
	}
}

// resolveReaderIndex picks the reader index from the -r flag, falling
// back to the config. Negative means read from a dump file.
func resolveReaderIndex(flagIdx int, cfg *config.Config) int {
	if flagIdx >= 0 {
		return flagIdx
	}
	if cfg != nil && cfg.Reader.Index != nil {
		return *cfg.Reader.Index
	}
	return -1
}

// readFromCard images the card in the given reader and returns the
// raw dump, optionally saving it to savePath.
func readFromCard(idx int, keyHex string, useKeyB bool, savePath string, cfg *config.Config) []byte {
	key, keyType := resolveKey(keyHex, useKeyB, cfg)

	conn, err := mifare.Connect(idx)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()
	fmt.Printf("Using reader [%d]: %s\n", conn.ReaderIdx, conn.Reader)

	atr, err := conn.ATR()
	if err != nil {
		log.Fatalf("read ATR failed: %v", err)
	}
	density, ok := mifare.DensityFromATR(atr)
	if !ok {
		log.Fatalf("card is not a MIFARE Classic 1K/4K (ATR % X)", atr)
	}
	slog.Debug("card detected", "density", density.String(), "reader", conn.Reader)

	raw, err := mifare.ReadCardDump(conn, density, key, keyType)
	if err != nil {
		if mifare.IsAuthError(err) {
			log.Fatalf("card read failed (wrong key?): %v", err)
		}
		log.Fatalf("card read failed: %v", err)
	}

	if savePath != "" {
		if err := os.WriteFile(savePath, raw, 0o644); err != nil {
			log.Fatalf("save dump failed: %v", err)
		}
		fmt.Printf("Wrote dump to: %s\n", savePath)
	}
	return raw
}

// resolveKey picks the sector key and key type from the -key flag, the
// config, or an interactive prompt, in that order.
func resolveKey(keyHex string, useKeyB bool, cfg *config.Config) ([mifare.KeySize]byte, byte) {
	keyType := byte(mifare.KeyTypeA)
	if useKeyB || (cfg != nil && cfg.UseKeyB()) {
		keyType = mifare.KeyTypeB
	}

	if keyHex != "" {
		key, err := mifare.ParseKeyHex(keyHex)
		if err != nil {
			log.Fatalf("-key invalid: %v", err)
		}
		return key, keyType
	}

	if cfg != nil {
		if cfg.Reader.KeyHex != "" {
			key, err := mifare.ParseKeyHex(cfg.Reader.KeyHex)
			if err != nil {
				log.Fatalf("config.reader.key_hex invalid: %v", err)
			}
			return key, keyType
		}
		if cfg.Reader.KeyHexFile != "" {
			key, err := mifare.LoadKeyHexFile(cfg.Reader.KeyHexFile)
			if err != nil {
				log.Fatalf("config.reader.key_hex_file invalid: %v", err)
			}
			return key, keyType
		}
	}

	key, err := promptKey()
	if err != nil {
		log.Fatalf("read key failed: %v", err)
	}
	return key, keyType
}

// promptKey asks for a sector key without echoing it.
func promptKey() ([mifare.KeySize]byte, error) {
	fmt.Fprint(os.Stderr, "Sector key (12 hex chars): ")
	line, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		var key [mifare.KeySize]byte
		return key, err
	}
	return mifare.ParseKeyHex(string(line))
}

// writeKeys writes one encoded key buffer and reports the path.
func writeKeys(path string, keys []byte) {
	if err := os.WriteFile(path, keys, 0o644); err != nil {
		log.Fatalf("can not write the file '%s': %v", path, err)
	}
	fmt.Printf("Wrote keys to: %s\n", path)
}
