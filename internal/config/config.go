package config

import (
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/payvek/payvek-go/internal/log"
	"github.com/payvek/payvek-go/pkg/callback"
	"github.com/payvek/payvek-go/pkg/payvek"
)

type Config struct {
	// compile-time parameters
	GitCommit  string
	GitVersion string

	Debug  bool       `yaml:"debug" env:"APP_DEBUG" env-default:"false" env-description:"Enables debug mode"`
	Logger log.Config `yaml:"logger"`

	API      payvek.Config   `yaml:"api"`
	Callback callback.Config `yaml:"callback"`
}

var once = sync.Once{}
var cfg = &Config{}
var errCfg error

func New(gitCommit, gitVersion, configPath string, skipConfig bool) (*Config, error) {
	once.Do(func() {
		cfg = &Config{
			GitCommit:  gitCommit,
			GitVersion: gitVersion,
		}

		if skipConfig {
			errCfg = cleanenv.ReadEnv(cfg)
			return
		}

		errCfg = cleanenv.ReadConfig(configPath, cfg)
	})

	return cfg, errCfg
}

func PrintUsage(w io.Writer) error {
	desc, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return err
	}

	const delimiter = "||"

	// 1 line == 1 env var
	desc = strings.ReplaceAll(desc, "\n    \t", delimiter)

	lines := strings.Split(desc, "\n")

	// remove header
	lines = lines[1:]

	// remove duplicates
	lines = lo.Uniq(lines)

	// sort a-z
	sort.Strings(lines)

	// write as a table
	t := tablewriter.NewWriter(w)
	t.SetBorder(false)
	t.SetAutoWrapText(false)
	t.SetHeader([]string{"ENV", "Description"})
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)

	for _, line := range lines {
		cells := lo.Map(strings.Split(line, delimiter), func(cell string, _ int) string {
			return strings.TrimSpace(cell)
		})
		t.Append(cells)
	}

	t.Render()

	return nil
}
