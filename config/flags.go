package config

import (
	"flag"
	"fmt"
	"io"
)

const usageText = `This program downloads one specific NCBI assembly, executes certain operations, then cleans up data

### Input/Output:
-a     genome NCBI accession
-o     folder to download to

### Actions:
-c     bash command template
-cf    bash command template read from this file
-p     python command template
-pf    python command template read from this file

In all templates above, these placeholders can be used:
{accession}   genome NCBI accession, e.g. GCA_000209535.1
{genomefile}  path to genome fasta file
{taxid}       taxonomy id
{species}     species name, e.g. "Drosophila melanogaster"
{mspecies}    masked species, e.g. "Drosophila_melanogaster"

### Other options:
-k      keep files instead of cleaning them up at the end
-w      max workers for downloads at once
-sh     open shells for bash commands. Required for complex commands
        (e.g. sequential commands, or using redirections)
-config YAML file naming the external tools and the run journal
-journal  sqlite file in which each run is recorded

-print_opt   print currently active options
-h | --help  print this help and exit
`

// Prints usage info to the given writer.
func Usage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// Parse resolves a Config from the given command-line arguments (excluding the
// program name). If -h or --help is given, the usage text is written to output
// and flag.ErrHelp is returned. The result is not validated.
func Parse(args []string, output io.Writer) (Config, error) {
	conf := Default()

	fs := flag.NewFlagSet("single-genome", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() { Usage(output) }

	var configFile, journal string
	fs.StringVar(&conf.Accession, "a", conf.Accession, "genome NCBI accession")
	fs.StringVar(&conf.OutputDir, "o", conf.OutputDir, "folder to download to")
	fs.StringVar(&conf.Command, "c", "", "bash command template")
	fs.StringVar(&conf.CommandFile, "cf", "", "bash command template file")
	fs.StringVar(&conf.Code, "p", "", "python command template")
	fs.StringVar(&conf.CodeFile, "pf", "", "python command template file")
	fs.BoolVar(&conf.Keep, "k", false, "keep files")
	fs.IntVar(&conf.Workers, "w", conf.Workers, "max workers for downloads")
	fs.BoolVar(&conf.UseShell, "sh", false, "run bash commands in a shell")
	fs.StringVar(&conf.TempDir, "temp", conf.TempDir, "temporary folder")
	fs.StringVar(&conf.TempDir, "t", conf.TempDir, "temporary folder")
	fs.BoolVar(&conf.PrintOptions, "print_opt", false, "print active options")
	fs.StringVar(&configFile, "config", "", "YAML configuration file")
	fs.StringVar(&journal, "journal", "", "sqlite run journal")

	if err := fs.Parse(args); err != nil {
		return conf, err
	}
	if fs.NArg() > 0 {
		return conf, &InvalidOptionError{
			Option:  "arguments",
			Message: fmt.Sprintf("unexpected positional argument '%s'", fs.Arg(0)),
		}
	}

	if configFile != "" {
		if err := conf.LoadFile(configFile); err != nil {
			return conf, err
		}
	}
	if journal != "" {
		conf.Journal = journal
	}
	return conf, nil
}
