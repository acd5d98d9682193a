package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/draftly-hq/draftly"
)

// runRender fills a built-in template with data from a JSON file and writes
// the resulting HTML, for eyeballing template changes without a database or
// browser.
func runRender(args []string) error {
	flags := flag.NewFlagSet("render", flag.ContinueOnError)
	flags.SetOutput(os.Stdout)
	flags.Usage = func() {
		fmt.Println("Usage: draftly-tools render -template <name> -data <file.json> [-o out.html]")
		fmt.Println("")
		fmt.Println("Options:")
		flags.PrintDefaults()
	}

	var (
		templateName = flags.String("template", "", "built-in template name (employment, service, rental, nda)")
		dataPath     = flags.String("data", "", "path to a JSON file with field values")
		outPath      = flags.String("o", "", "output file (default stdout)")
	)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *templateName == "" {
		return fmt.Errorf("-template is required")
	}

	var tpl *draftly.Template
	for _, t := range draftly.BuiltinTemplates() {
		if t.Name == *templateName {
			tpl = &t
			break
		}
	}
	if tpl == nil {
		return fmt.Errorf("unknown template %q", *templateName)
	}

	data := map[string]any{}
	if *dataPath != "" {
		raw, err := os.ReadFile(*dataPath)
		if err != nil {
			return fmt.Errorf("read data file: %w", err)
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("parse data file: %w", err)
		}
	}

	validated, err := draftly.BuildValidator(tpl.Fields).Validate(data)
	if err != nil {
		return err
	}

	html := draftly.RenderDocument(tpl, &draftly.Contract{Data: validated})

	if *outPath == "" {
		fmt.Println(html)
		return nil
	}
	return os.WriteFile(*outPath, []byte(html), 0o644)
}
