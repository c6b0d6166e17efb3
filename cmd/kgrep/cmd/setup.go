package cmd

import (
	"io"
	"log/slog"

	"github.com/corey/kgrep/internal/adapters/config"
	"github.com/corey/kgrep/internal/adapters/treesitter"
	"github.com/corey/kgrep/internal/domain/alias"
)

// newLogger returns a text logger on w at warn level, or debug with -v.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadAliases reads the config file named by -c, or the default one, and
// builds the alias table. A missing file is an empty table.
func loadAliases(log *slog.Logger) (*alias.Table, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			log.Debug("no default config", "err", err)
			return alias.New(nil).WithBuiltins(builtinAliases), nil
		}
		path = p
	}

	doc, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	t := alias.FromConfig(doc).WithBuiltins(builtinAliases)
	log.Debug("config loaded", "path", path, "languages", t.Languages(), "builtin_aliases", builtinAliases)
	return t, nil
}

// newParser returns a parser that also loads grammars from --grammar-dir and
// the per-user grammar directory. Close the returned parser's loader when done.
func newParser() *treesitter.Parser {
	p := treesitter.NewParser()
	p.SetGrammarPaths(treesitter.DefaultGrammarPaths(grammarDirs))
	return p
}

func closeParser(p *treesitter.Parser) {
	if l := p.Loader(); l != nil {
		l.Close()
	}
}
