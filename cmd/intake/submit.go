package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/domain/lead"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/intake"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/config"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/logger"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/redis"
)

type submitEnv struct {
	Endpoint      string        `env:"INTAKE_ENDPOINT"`
	Mode          string        `env:"INTAKE_MODE" envDefault:"opaque"`
	Timeout       time.Duration `env:"INTAKE_TIMEOUT" envDefault:"30s"`
	Language      string        `env:"INTAKE_LANGUAGE" envDefault:"th"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	DraftTTL      time.Duration `env:"INTAKE_DRAFT_TTL" envDefault:"24h"`
}

// leadFile is the YAML answer sheet. Lists answer checkbox groups.
type leadFile struct {
	Service lead.ServiceType    `yaml:"service"`
	Answers map[string]yamlList `yaml:"answers"`
	Contact map[string]yamlList `yaml:"contact"`
}

// yamlList accepts either a scalar or a sequence.
type yamlList []string

func (l *yamlList) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.SequenceNode {
		var out []string
		if err := n.Decode(&out); err != nil {
			return err
		}
		*l = out
		return nil
	}
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	*l = []string{s}
	return nil
}

func toValues(m map[string]yamlList) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var (
	leadPath     string
	endpointFlag string
	modeFlag     string
	sessionFlag  string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Fill the forms from a YAML file and submit the lead",
	Long: `Fill the service questionnaire and the contact form from a YAML file,
then submit the merged lead to the router.

Example lead.yaml:
  service: SCG Metal Roof Replacement
  answers:
    houseType: อื่นๆ
    otherHouseType: Townhouse
    roofProblems: [สนิม, อื่นๆ]
    otherProblem: Gutter leak
  contact:
    fullName: Somchai
    phone: "0812345678"
    district: บางนา
    province: กรุงเทพมหานคร
    customerType: เจ้าของบ้าน`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVarP(&leadPath, "file", "f", "", "lead YAML file (required)")
	submitCmd.Flags().StringVar(&endpointFlag, "endpoint", "", "router URL (overrides INTAKE_ENDPOINT)")
	submitCmd.Flags().StringVar(&modeFlag, "mode", "", "submit mode: opaque or ack (overrides INTAKE_MODE)")
	submitCmd.Flags().StringVar(&sessionFlag, "session", "", "draft session id (default random)")
	_ = submitCmd.MarkFlagRequired("file")
}

func loadLeadFile(path string) (leadFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return leadFile{}, err
	}
	var lf leadFile
	if err := yaml.Unmarshal(raw, &lf); err != nil {
		return leadFile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if !lf.Service.Valid() {
		return leadFile{}, fmt.Errorf("%s: unknown service %q", path, lf.Service)
	}
	return lf, nil
}

func runSubmit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var env submitEnv
	if err := config.ParseEnv(&env); err != nil {
		return err
	}
	if endpointFlag != "" {
		env.Endpoint = endpointFlag
	}
	if modeFlag != "" {
		env.Mode = modeFlag
	}
	mode, err := intake.ParseMode(env.Mode)
	if err != nil {
		return err
	}
	lang, err := language.Parse(env.Language)
	if err != nil {
		return fmt.Errorf("INTAKE_LANGUAGE: %w", err)
	}

	lf, err := loadLeadFile(leadPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	sub, err := intake.NewHTTPSubmitter(log, intake.HTTPSubmitterConfig{Endpoint: env.Endpoint, Mode: mode, Timeout: env.Timeout})
	if err != nil {
		return err
	}

	var drafts intake.DraftStore = intake.NewMemoryDraftStore()
	if env.RedisAddr != "" {
		rdb, err := redis.NewClient(log, redis.Config{Addr: env.RedisAddr, Password: env.RedisPassword, DB: env.RedisDB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		drafts = intake.NewRedisDraftStore(rdb, "intake", env.DraftTTL)
	}

	id := sessionFlag
	if id == "" {
		id = uuid.NewString()
	}
	out := cmd.OutOrStdout()
	sess, err := intake.NewSession(log, id, intake.SessionConfig{
		Drafts:    drafts,
		Submitter: sub,
		Language:  lang,
		OnTransition: func(from, to intake.State) {
			if verbose {
				fmt.Fprintf(out, "%s -> %s\n", from, to)
			}
		},
	})
	if err != nil {
		return err
	}

	if err := sess.SelectService(lf.Service); err != nil {
		return err
	}
	if err := intake.Fill(sess.Form(), toValues(lf.Answers)); err != nil {
		return err
	}
	if err := sess.CompleteServiceForm(ctx); err != nil {
		return err
	}
	if err := intake.Fill(sess.Form(), toValues(lf.Contact)); err != nil {
		return err
	}
	if err := sess.Submit(ctx); err != nil {
		if alert := sess.Alert(); alert != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), alert)
		}
		return err
	}
	fmt.Fprintf(out, "Lead submitted (session %s)\n", id)
	return nil
}
