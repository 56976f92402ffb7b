package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/prompt"
	"github.com/etnz/advisor/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type planCmd struct {
	name       string
	age        int
	monthly    string
	horizon    int
	goal       string
	risk       string
	currency   string
	promptOnly bool
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "suggest an investment allocation for a profile" }
func (*planCmd) Usage() string {
	return `fad plan -name <name> -age <age> -monthly <amount> -horizon <years> -goal <goal> -risk <Low|Moderate|High> [-currency <code>] [-prompt]

  Asks the model for a portfolio allocation (equity and index funds, gold, bonds, deposits)
  suited to the profile.
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Your name")
	f.IntVar(&c.age, "age", 30, "Your age, in years")
	f.StringVar(&c.monthly, "monthly", "5000", "Amount invested every month")
	f.IntVar(&c.horizon, "horizon", 10, "Investment horizon, in years")
	f.StringVar(&c.goal, "goal", "Wealth creation", "Investment goal")
	f.StringVar(&c.risk, "risk", string(advisor.Moderate), "Risk level (Low, Moderate, High)")
	f.StringVar(&c.currency, "currency", advisor.DefaultCurrency, "Currency of the monthly investment")
	f.BoolVar(&c.promptOnly, "prompt", false, "Print the prompt instead of sending it")
}

// profile builds and validates the profile from the flags.
func (c *planCmd) profile() (advisor.Profile, error) {
	monthly, err := decimal.NewFromString(c.monthly)
	if err != nil {
		return advisor.Profile{}, fmt.Errorf("invalid monthly amount %q: %w", c.monthly, err)
	}
	risk, err := advisor.ParseRiskLevel(c.risk)
	if err != nil {
		return advisor.Profile{}, err
	}
	p := advisor.Profile{
		Name:              c.name,
		Age:               c.age,
		MonthlyInvestment: monthly,
		Horizon:           c.horizon,
		Goal:              c.goal,
		Risk:              risk,
		Currency:          c.currency,
	}
	return p, p.Validate()
}

func (c *planCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := c.profile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	pr := prompt.Allocation(p)
	if c.promptOnly {
		fmt.Println(pr)
		return subcommands.ExitSuccess
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	model, err := newModel(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	reply := model.Reply(ctx, pr)
	printMarkdown(renderer.RenderPlan(&renderer.Plan{Profile: p, Reply: reply}))
	if !reply.OK() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
