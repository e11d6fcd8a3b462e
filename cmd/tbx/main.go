package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/xigtools/toolbox/core"
	"github.com/xigtools/toolbox/core/field"
	"github.com/xigtools/toolbox/engine/align"
	"github.com/xigtools/toolbox/engine/records"
	"github.com/xigtools/toolbox/input/toolbox"
)

// tracer traces with key 'toolbox.cli'
func tracer() tracing.Trace {
	return tracing.Select("toolbox.cli")
}

var traceKeys = []string{"toolbox.cli", "toolbox.input", "toolbox.records", "toolbox.align"}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = "Error"
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	policyname := flag.String("policy", "strict", "Alignment policy [strict|ratio|reanalyze]")
	recmarker := flag.String("record", `\ref`, "Record delimiter marker")
	alignspec := flag.String("align", `\m=\t,\g=\m`, "Alignment map, comma-separated dep=ref pairs")
	flag.Parse()
	setTraceLevels(*tlevel)
	if flag.NArg() != 1 {
		pterm.Error.Println("usage: tbx [options] <corpus.txt>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	policy, err := align.ParsePolicy(*policyname)
	if err != nil {
		pterm.Error.Println(core.UserMessage(err))
		os.Exit(2)
	}
	alignments, err := parseAlignSpec(*alignspec)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	//
	// read the corpus
	input, err := os.Open(flag.Arg(0))
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	defer input.Close()
	fields, err := toolbox.ReadFields(input)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	tracer().Infof("read %d fields from %s", len(fields), flag.Arg(0))
	//
	// group, normalize and align record by record
	aligned := field.MarkerSet{}
	for dep, ref := range alignments {
		aligned.Add(dep)
		aligned.Add(ref)
	}
	recs, err := records.Records(fields, []field.Marker{field.Marker(*recmarker)}, nil)
	if err != nil {
		pterm.Error.Println(core.UserMessage(err))
		os.Exit(3)
	}
	for i, rec := range recs {
		ref := rec.Context[field.Marker(*recmarker)]
		pterm.Printfln("— record %d  %s %s", i+1, *recmarker, ref)
		normalized := records.NormalizeRecord(rec.Fields, aligned, true)
		var warnings []align.Warning
		result, err := align.Align(normalized, alignments,
			align.WithPolicy(policy),
			align.WithWarningHandler(align.CollectWarnings(&warnings)))
		if err != nil {
			pterm.Error.Printfln("record %d: %s", i+1, core.UserMessage(err))
			continue
		}
		printResult(result)
		for _, w := range warnings {
			pterm.Warning.Println(w.String())
		}
	}
}

func printResult(result align.Result) {
	for _, tier := range result {
		var parts []string
		for _, p := range tier.Pairs {
			switch {
			case p.IsNull() && p.Ref.IsNone():
				parts = append(parts, "∅")
			case p.IsNull():
				parts = append(parts, fmt.Sprintf("%s→∅", p.Ref))
			case p.Ref.IsNone():
				parts = append(parts, fmt.Sprintf("[%s]", strings.Join(p.Tokens, " ")))
			default:
				parts = append(parts, fmt.Sprintf("%s→[%s]", p.Ref, strings.Join(p.Tokens, " ")))
			}
		}
		pterm.Printfln("  %-6s %s", tier.Marker, strings.Join(parts, "  "))
	}
}

// parseAlignSpec parses `\m=\t,\g=\m` into an alignment map.
func parseAlignSpec(spec string) (align.Map, error) {
	m := align.Map{}
	if strings.TrimSpace(spec) == "" {
		return m, nil
	}
	for _, pair := range strings.Split(spec, ",") {
		dep, ref, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || dep == "" || ref == "" {
			return nil, fmt.Errorf("malformed alignment pair %q", pair)
		}
		m[field.Marker(dep)] = field.Marker(ref)
	}
	return m, nil
}

func setTraceLevels(level string) {
	for _, key := range traceKeys {
		t := tracing.Select(key)
		switch level {
		case "Debug":
			t.SetTraceLevel(tracing.LevelDebug)
		case "Info":
			t.SetTraceLevel(tracing.LevelInfo)
		default:
			t.SetTraceLevel(tracing.LevelError)
		}
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " tbx ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
