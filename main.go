package main

import (
	"flag"
	"fmt"
	"html/template"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/kzmdstu/tcinfo/timecode"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// fieldFuncs are functions usable in field templates.
// timecode and mov count frames in fr.
func fieldFuncs(fr timecode.FrameRate, verbose bool) template.FuncMap {
	return template.FuncMap{
		"remap": func(path, from, to string) string {
			if !strings.HasPrefix(path, from) {
				return path
			}
			path = strings.Replace(path, from, to, 1)
			return path
		},
		"dirname": filepath.Dir,
		"abspath": filepath.Abs,
		"output": func(args ...string) (string, error) {
			if len(args) == 0 {
				return "", errors.New("command not specified")
			}
			cmd := args[0]
			args = args[1:]
			safeCmds := []string{"oiiotool", "ffprobe"}
			safe := false
			for _, c := range safeCmds {
				if cmd == c {
					safe = true
					break
				}
			}
			if !safe {
				return "", errors.Errorf("unknown command: %v", cmd)
			}
			c := exec.Command(cmd, args...)
			out, err := c.CombinedOutput()
			if err != nil {
				return "", errors.Errorf("failed to execute: %v", string(out))
			}
			return string(out), nil
		},
		"timecode": func(frame string) (string, error) {
			n, err := strconv.Atoi(frame)
			if err != nil {
				return "", errors.Wrapf(err, "invalid frame number %q", frame)
			}
			return timecode.FromFrames(n, fr).String(), nil
		},
		"mov": func(path string) (*Mov, error) {
			return parseMov(path, verbose)
		},
	}
}

type Table struct {
	sync.Mutex
	Cells [][]string
}

func NewTable(i, j int) *Table {
	cells := make([][]string, i)
	for i := range cells {
		cells[i] = make([]string, j)
	}
	return &Table{Cells: cells}
}

// findSequences walks root and groups files with the extensions into sequences.
func findSequences(root string, extensions []string, origin timecode.Timecode) ([]*Sequence, error) {
	seqs := make([]*Sequence, 0)
	err := filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return errors.Wrap(err, path)
		}
		if fi.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext == "" {
			return nil
		}
		ext = ext[1:] // remove .
		found := false
		for _, e := range extensions {
			if e == ext {
				found = true
			}
		}
		if !found {
			return nil
		}
		path = filepath.Clean(path)
		dir := filepath.Dir(path)
		name := filepath.Base(path)
		m := ReSplitSeqName.FindStringSubmatch(name)
		if m == nil {
			return nil
		}
		pre := m[1]
		frame := m[2]
		f, _ := strconv.Atoi(frame)
		post := m[3]
		seq := filepath.Join(dir, pre+"{{$.Frame}}"+post)
		if len(seqs) == 0 || seqs[len(seqs)-1].Name != seq {
			seqs = append(seqs, &Sequence{Name: seq, Start: frame, End: frame, origin: origin})
		} else {
			s := seqs[len(seqs)-1]
			start, _ := strconv.Atoi(s.Start)
			end, _ := strconv.Atoi(s.End)
			if f < start {
				s.Start = frame
			} else if f > end {
				s.End = frame
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seqs, nil
}

// fillTable executes every field template for every sequence.
// The first row of the table has the field names.
func fillTable(seqs []*Sequence, fields []Field, tmpl map[string]*template.Template) *Table {
	table := NewTable(len(seqs)+1, len(fields)) // +1 for label
	for j, field := range fields {
		table.Cells[0][j] = field.Name
	}
	type execInfo struct {
		i, j int
		tmpl *template.Template
		seq  *Sequence
	}
	ch := make(chan execInfo)
	var wg sync.WaitGroup
	maxConcurrent := runtime.NumCPU() * 2
	for i := 0; i < maxConcurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ex := range ch {
				out := strings.Builder{}
				err := ex.tmpl.Execute(&out, ex.seq)
				if err != nil {
					logrus.WithFields(logrus.Fields{
						"sequence": ex.seq.Name,
						"field":    fields[ex.j].Name,
					}).WithError(err).Debug("failed to execute")
					continue
				}
				val := strings.TrimSpace(out.String())
				table.Lock()
				table.Cells[ex.i+1][ex.j] = val
				table.Unlock()
			}
		}()
	}
	for i, s := range seqs {
		for j, field := range fields {
			ch <- execInfo{i: i, j: j, tmpl: tmpl[field.Name], seq: s}
		}
	}
	close(ch)
	wg.Wait()
	return table
}

func writeExcel(table *Table, path string) error {
	f := excelize.NewFile()
	for i, row := range table.Cells {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue("Sheet1", cell, val); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

func printTable(table *Table, sep string) {
	for _, row := range table.Cells {
		fmt.Println(strings.Join(row, sep))
	}
}

func main() {
	// Do not print time in logs.
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	// Parse Flags
	var (
		configFlag  string
		extsFlag    string
		sepFlag     string
		rateFlag    string
		verboseFlag bool
		writeFlag   bool
		writeToFlag string
	)
	config := "config.toml"
	configHelp := "path of config file"
	envConfig := os.Getenv("TCINFO_CONFIG")
	if envConfig != "" {
		config = envConfig
		configHelp += ", default inherited from TCINFO_CONFIG environment variable"
	}
	flag.StringVar(&configFlag, "config", config, configHelp)
	flag.StringVar(&extsFlag, "exts", "dpx,exr", "meaningful extensions")
	flag.StringVar(&sepFlag, "sep", "\t", "fields will be separated by this value when printed")
	flag.StringVar(&rateFlag, "rate", "", "frame rate of sequences, ex) 24, 29.97df. overrides the config.")
	flag.BoolVar(&verboseFlag, "v", false, "print errors from value calculation")
	flag.BoolVar(&writeFlag, "w", false, "write to excel file. will print instead when it is false.")
	flag.StringVar(&writeToFlag, "f", "tcinfo_output.xlsx", "excel file path to be written. no-op if -w flag is off. existing file will be overrided.")
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 || configFlag == "" {
		fmt.Fprintln(os.Stderr, filepath.Base(os.Args[0])+" [args...] searchroot")
		flag.PrintDefaults()
		return
	}
	if verboseFlag {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if writeToFlag == "" {
		// Cannot write, print instead.
		writeFlag = false
	}
	searchRoot := filepath.Clean(args[0])
	cfg, err := loadConfig(configFlag)
	if err != nil {
		logrus.Fatal(err)
	}
	fr, err := cfg.frameRate(rateFlag)
	if err != nil {
		logrus.Fatal(err)
	}
	origin, err := cfg.origin(fr)
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.WithFields(logrus.Fields{"rate": fr, "start": origin}).Debug("counting timecodes")
	// Generate a template for each label.
	funcs := fieldFuncs(fr, verboseFlag)
	tmpl := make(map[string]*template.Template)
	for _, field := range cfg.Fields {
		t, err := template.New("t").Funcs(funcs).Parse(field.Value)
		if err != nil {
			logrus.WithField("field", field.Name).Fatal(err)
		}
		tmpl[field.Name] = t
	}
	seqs, err := findSequences(searchRoot, strings.Split(extsFlag, ","), origin)
	if err != nil {
		logrus.Fatalf("walk failed: %v", err)
	}
	logrus.Debugf("found %d sequences", len(seqs))
	table := fillTable(seqs, cfg.Fields, tmpl)
	if !writeFlag {
		printTable(table, sepFlag)
		return
	}
	if err := writeExcel(table, writeToFlag); err != nil {
		logrus.Error(err)
	}
}
