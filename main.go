package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/morphkit/morph/internal/config"
	"github.com/morphkit/morph/internal/convert"
	"github.com/morphkit/morph/internal/detect"
	"github.com/morphkit/morph/internal/errors"
	"github.com/morphkit/morph/internal/extract"
	"github.com/morphkit/morph/internal/jsonpath"
	"github.com/morphkit/morph/internal/models"
	"github.com/morphkit/morph/internal/repair"
)

// Version information
const Version = "0.1.0"

// CLI defines the command-line interface
var CLI struct {
	Config  string           `help:"Path to a morph config file." type:"path"`
	Indent  int              `help:"Indent width for pretty-printed output, overrides config." short:"n"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Fmt      FmtCmd      `cmd:"" help:"Pretty-print a document in its own notation."`
	Convert  ConvertCmd  `cmd:"" help:"Convert a document between json, xml, yaml and csv."`
	Compress CompressCmd `cmd:"" help:"Minify a JSON document."`
	Validate ValidateCmd `cmd:"" help:"Check a document against strict JSON."`
	Detect   DetectCmd   `cmd:"" help:"Guess the notation of a document."`
	Fix      FixCmd      `cmd:"" help:"Repair malformed JSON-like text."`
	Extract  ExtractCmd  `cmd:"" help:"Pull JSON out of cURL commands, Base64 blobs, URLs and log lines."`
	Stats    StatsCmd    `cmd:"" help:"Report node count, depth and byte size of a JSON document."`
	Path     PathCmd     `cmd:"" help:"Show the structural path at a character offset."`
	Query    QueryCmd    `cmd:"" help:"Evaluate a path expression against a JSON document."`
	Escape   EscapeCmd   `cmd:"" help:"Escape or unescape text using the JSON string grammar."`
}

// Context holds the runtime context shared by all commands
type Context struct {
	Config *config.Config
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("morph"),
		kong.Description("A workbench for inspecting, converting and repairing JSON, XML and YAML documents"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("morph version %s", Version)},
	)

	cfg, err := config.LoadConfigWithCLI(CLI.Config, CLI.Indent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	if err := runCommand(ctx, &Context{Config: cfg}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// runCommand dispatches to the selected command, converting any panic from
// the engine into an ordinary error so the tool never crashes on
// adversarial input.
func runCommand(ctx *kong.Context, appCtx *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewInputError(fmt.Sprintf("internal failure on this input: %v", r), nil)
		}
	}()
	return ctx.Run(appCtx)
}

// inputFlags is embedded by every command that reads a document
type inputFlags struct {
	Input  string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
}

// readInput reads the document from file or stdin
func (f *inputFlags) readInput() (string, error) {
	if f.Input != "" {
		data, err := os.ReadFile(f.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(fmt.Sprintf("file '%s' not found", f.Input), errors.ErrFileNotFound)
			}
			return "", errors.NewInputError(fmt.Sprintf("failed to read file '%s'", f.Input), err)
		}
		if len(data) == 0 {
			return "", errors.NewInputError(fmt.Sprintf("input file '%s' is empty", f.Input), errors.ErrFileEmpty)
		}
		return string(data), nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// writeOutput writes the result to file or stdout
func (f *inputFlags) writeOutput(text string) error {
	if f.Output != "" {
		if err := os.WriteFile(f.Output, []byte(text), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", f.Output), err)
		}
		return nil
	}
	if _, err := fmt.Println(strings.TrimRight(text, "\n")); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// FmtCmd pretty-prints a document in its own notation
type FmtCmd struct {
	inputFlags
	Type string `help:"Notation of the input (json, xml or yaml). Autodetected when omitted." short:"t"`
}

func (c *FmtCmd) Run(ctx *Context) error {
	text, err := c.readInput()
	if err != nil {
		return err
	}

	var format models.Format
	if c.Type == "" {
		format = detect.Detect(text)
	} else {
		var ok bool
		if format, ok = models.ParseFormat(c.Type); !ok {
			return errors.NewUnsupportedError(fmt.Sprintf("unsupported format %q", c.Type), errors.ErrUnsupportedFormat)
		}
	}

	indent := ctx.Config.Format.IndentWidth
	var out string
	switch format {
	case models.FormatJSON:
		out, err = convert.FormatJSON(text, indent)
	case models.FormatXML:
		out, err = convert.FormatXML(text, indent)
	case models.FormatYAML:
		out, err = convert.FormatYAML(text, indent)
	default:
		return errors.NewUnsupportedError("could not detect the input format", errors.ErrUnsupportedFormat)
	}
	if err != nil {
		return err
	}
	return c.writeOutput(out)
}

// ConvertCmd converts a document between notations
type ConvertCmd struct {
	inputFlags
	From string `help:"Source notation (json, xml, yaml or csv). Autodetected when omitted."`
	To   string `help:"Target notation (json, xml, yaml or csv)." required:"" enum:"json,xml,yaml,csv"`
}

func (c *ConvertCmd) Run(ctx *Context) error {
	text, err := c.readInput()
	if err != nil {
		return err
	}

	indent := ctx.Config.Format.IndentWidth
	var out string
	switch {
	case c.From == "csv":
		if c.To != "json" {
			return errors.NewUnsupportedError("CSV can only be converted to json", errors.ErrUnsupportedFormat)
		}
		out, err = convert.CSVToJSON(text, indent, ctx.Config.HeaderKey)
	case c.To == "csv":
		out, err = convert.JSONToCSV(text)
	default:
		out, err = convert.Convert(text, models.Format(c.From), models.Format(c.To), indent)
	}
	if err != nil {
		return err
	}
	return c.writeOutput(out)
}

// CompressCmd minifies a JSON document
type CompressCmd struct {
	inputFlags
}

func (c *CompressCmd) Run(ctx *Context) error {
	text, err := c.readInput()
	if err != nil {
		return err
	}
	res, err := convert.CompressJSON(text)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%d bytes -> %d bytes\n", res.OriginalSize, res.CompressedSize)
	return c.writeOutput(res.Result)
}

// ValidateCmd checks a document against strict JSON
type ValidateCmd struct {
	inputFlags
}

func (c *ValidateCmd) Run(ctx *Context) error {
	text, err := c.readInput()
	if err != nil {
		return err
	}
	v := convert.ValidateJSON(text)
	if v.Valid {
		return c.writeOutput("valid")
	}
	if v.Position >= 0 {
		return errors.NewParseError(fmt.Sprintf("invalid JSON at position %d: %s", v.Position, v.Error), errors.ErrInvalidJSON)
	}
	return errors.NewParseError(fmt.Sprintf("invalid JSON: %s", v.Error), errors.ErrInvalidJSON)
}

// DetectCmd guesses the notation of a document
type DetectCmd struct {
	inputFlags
}

func (c *DetectCmd) Run(ctx *Context) error {
	text, err := c.readInput()
	if err != nil {
		return err
	}
	return c.writeOutput(string(detect.Detect(text)))
}

// FixCmd repairs malformed JSON-like text
type FixCmd struct {
	inputFlags
}

func (c *FixCmd) Run(ctx *Context) error {
	text, err := c.readInput()
	if err != nil {
		return err
	}
	res, err := repair.TryFix(text, ctx.Config.Format.IndentWidth)
	for _, fix := range res.Fixes {
		fmt.Fprintf(os.Stderr, "applied: %s\n", fix)
	}
	if err != nil {
		return err
	}
	return c.writeOutput(res.Result)
}

// ExtractCmd pulls JSON out of foreign envelopes
type ExtractCmd struct {
	inputFlags
	Mode string `help:"Extraction strategy (smart, curl or base64)." enum:"smart,curl,base64" default:"smart"`
}

func (c *ExtractCmd) Run(ctx *Context) error {
	text, err := c.readInput()
	if err != nil {
		return err
	}

	indent := ctx.Config.Format.IndentWidth
	var res models.ExtractResult
	switch c.Mode {
	case "curl":
		res, err = extract.FromCurl(text, indent)
	case "base64":
		res, err = extract.FromBase64(text, indent)
	default:
		opts := extract.Options{
			Curl:       ctx.Config.Extract.Curl,
			Base64:     ctx.Config.Extract.Base64,
			URLDecode:  ctx.Config.Extract.URLDecode,
			CodeFences: ctx.Config.Extract.CodeFences,
		}
		res, err = extract.Smart(text, indent, opts)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "detected: %s\n", res.DetectedType)
	if res.URL != "" {
		fmt.Fprintf(os.Stderr, "url: %s\n", res.URL)
	}
	for key, value := range res.Headers {
		fmt.Fprintf(os.Stderr, "header: %s: %s\n", key, value)
	}
	return c.writeOutput(res.Result)
}

// StatsCmd reports node count, depth and byte size
type StatsCmd struct {
	inputFlags
}

func (c *StatsCmd) Run(ctx *Context) error {
	text, err := c.readInput()
	if err != nil {
		return err
	}
	stats, err := jsonpath.Stats(text)
	if err != nil {
		return err
	}
	return c.writeOutput(fmt.Sprintf("nodes: %d\ndepth: %d\nbytes: %d", stats.NodeCount, stats.Depth, stats.ByteSize))
}

// PathCmd shows the structural path at a character offset
type PathCmd struct {
	inputFlags
	Offset int `help:"Character offset into the document." arg:""`
}

func (c *PathCmd) Run(ctx *Context) error {
	text, err := c.readInput()
	if err != nil {
		return err
	}
	return c.writeOutput(jsonpath.PathAtOffset(text, c.Offset))
}

// QueryCmd evaluates a path expression, optionally setting a new value
type QueryCmd struct {
	inputFlags
	Path string `help:"Path expression, e.g. user.emails.0" arg:""`
	Set  string `help:"Value to write at the path instead of reading it."`
}

func (c *QueryCmd) Run(ctx *Context) error {
	text, err := c.readInput()
	if err != nil {
		return err
	}
	var out string
	if c.Set != "" {
		out, err = jsonpath.SetPath(text, c.Path, c.Set)
	} else {
		out, err = jsonpath.Query(text, c.Path)
	}
	if err != nil {
		return err
	}
	return c.writeOutput(out)
}

// EscapeCmd escapes or unescapes text using the JSON string grammar
type EscapeCmd struct {
	inputFlags
	Unescape bool `help:"Unescape instead of escape." short:"u"`
}

func (c *EscapeCmd) Run(ctx *Context) error {
	text, err := c.readInput()
	if err != nil {
		return err
	}
	if c.Unescape {
		return c.writeOutput(convert.UnescapeString(strings.TrimRight(text, "\n")))
	}
	return c.writeOutput(convert.EscapeString(strings.TrimRight(text, "\n")))
}
