package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/formguard/pkg/apiclient"
	"github.com/dmitrymomot/formguard/pkg/cookie"
	"github.com/dmitrymomot/formguard/pkg/i18n"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/reactive"
	"github.com/dmitrymomot/formguard/pkg/requestid"
	"github.com/dmitrymomot/formguard/pkg/rules"
	"github.com/dmitrymomot/formguard/pkg/validation"
)

// localeCookie tells the backend which language to answer in.
const localeCookie = "locale"

var checkKinds = []string{"project", "org", "apikey", "channel", "color"}

type checkCmd struct {
	cfg    appConfig
	out    io.Writer
	errOut io.Writer

	// flags
	owner    string
	username string
	project  string
	existing string
	lang     string
	token    string
	message  string
	minLen   int
	maxLen   int
}

func newCheckCmd(cfg appConfig, out, errOut io.Writer) *checkCmd {
	return &checkCmd{cfg: cfg, out: out, errOut: errOut}
}

// Register adds the check command to the application
func (cmd *checkCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "check",
		Usage:     "Check a value against the availability rule for its kind",
		UsageText: "formguard check [options] <" + strings.Join(checkKinds, "|") + "> <value>",
		Description: `Runs the required rule, optional length rules and the remote
availability rule for the given kind, then prints "ok" or the localized
error messages. Exits with status 1 when the value is invalid.`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "owner", Usage: "owner id for project names", Destination: &cmd.owner},
			&cli.StringFlag{Name: "username", Usage: "user for API key names", Destination: &cmd.username},
			&cli.StringFlag{Name: "project", Usage: "project id for channel names and colors", Destination: &cmd.project},
			&cli.StringFlag{Name: "existing", Usage: "current channel name or color being edited", Destination: &cmd.existing},
			&cli.StringFlag{
				Name:        "lang",
				Usage:       "preferred languages, Accept-Language syntax",
				Sources:     cli.EnvVars("FORMGUARD_LANG"),
				Destination: &cmd.lang,
			},
			&cli.StringFlag{
				Name:        "token",
				Usage:       "bearer token for authenticated checks",
				Sources:     cli.EnvVars("FORMGUARD_API_TOKEN"),
				Destination: &cmd.token,
			},
			&cli.StringFlag{Name: "message", Usage: "override message for the availability rule", Destination: &cmd.message},
			&cli.IntFlag{Name: "min", Usage: "minimum length", Destination: &cmd.minLen},
			&cli.IntFlag{Name: "max", Usage: "maximum length", Destination: &cmd.maxLen},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *checkCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected <kind> <value>, got %d arguments", c.Args().Len())
	}

	valid, messages, err := cmd.check(ctx, c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	if valid {
		_, _ = fmt.Fprintln(cmd.out, "ok")
		return nil
	}

	for _, m := range messages {
		_, _ = fmt.Fprintln(cmd.errOut, m)
	}
	return cli.Exit("", 1)
}

// check validates value and returns the localized messages of every error.
func (cmd *checkCmd) check(ctx context.Context, kind, value string) (bool, []string, error) {
	if !slices.Contains(checkKinds, kind) {
		return false, nil, fmt.Errorf("unknown kind %q, expected one of %s", kind, strings.Join(checkKinds, ", "))
	}

	log := logger.New(append(logger.FromConfig(cmd.cfg.Log),
		logger.WithOutput(cmd.errOut),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)...)
	ctx = requestid.WithContext(ctx, requestid.New())

	translator, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(rules.Locales, "locales"),
		i18n.WithDefaultLanguage(cmd.cfg.DefaultLocale),
		i18n.WithLogger(log),
	)
	if err != nil {
		return false, nil, fmt.Errorf("load translations: %w", err)
	}
	lang := i18n.ParseAcceptLanguage(cmd.lang, translator.SupportedLanguages(), translator.DefaultLanguage())
	ctx = i18n.SetLocale(ctx, lang)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return false, nil, fmt.Errorf("create cookie jar: %w", err)
	}
	opts := []apiclient.Option{
		apiclient.WithHTTPClient(&http.Client{Jar: jar, Timeout: cmd.cfg.API.Timeout}),
		apiclient.WithLogger(log),
	}
	if cmd.token != "" {
		opts = append(opts, apiclient.WithTokenSource(apiclient.StaticToken(cmd.token)))
	}
	client, err := apiclient.New(cmd.cfg.API, opts...)
	if err != nil {
		return false, nil, err
	}

	base, err := url.Parse(cmd.cfg.API.BaseURL)
	if err != nil {
		return false, nil, fmt.Errorf("parse base url: %w", err)
	}
	cookies, err := cookie.NewJarStore(jar, base, cmd.cfg.Cookie.Options()...)
	if err != nil {
		return false, nil, err
	}
	if err := cookies.Set(localeCookie, lang); err != nil {
		return false, nil, err
	}

	set := rules.New(translator, client, rules.WithLogger(log))
	list := []validation.Rule{set.Required()}
	if cmd.minLen > 0 {
		list = append(list, set.MinLength(cmd.minLen))
	}
	if cmd.maxLen > 0 {
		list = append(list, set.MaxLength(cmd.maxLen))
	}
	list = append(list, cmd.remoteRule(set, kind))

	field := validation.NewField(kind, reactive.NewValue(value),
		validation.WithRules(list...),
		validation.WithContext(ctx),
		validation.WithLogger(log),
	)
	defer func() { _ = field.Close() }()

	valid, err := field.Validate(ctx)
	if err != nil {
		return false, nil, err
	}

	errs := field.Errors()
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message(ctx))
	}
	return valid, messages, nil
}

func (cmd *checkCmd) remoteRule(set *rules.Set, kind string) validation.Rule {
	var msg []string
	if cmd.message != "" {
		msg = []string{cmd.message}
	}

	switch kind {
	case "project":
		return set.ValidProjectName(reactive.Static(cmd.owner), msg...)
	case "apikey":
		return set.ValidAPIKeyName(reactive.Static(cmd.username), msg...)
	case "channel":
		return set.ValidChannelName(reactive.Static(cmd.project), reactive.Static(cmd.existing), msg...)
	case "color":
		return set.ValidChannelColor(reactive.Static(cmd.project), reactive.Static(cmd.existing), msg...)
	default:
		return set.ValidOrgName(msg...)
	}
}
