// Command eudrctl is a command-line client for the EUDR web services.
//
// Usage:
//
//	eudrctl [-config file] echo [query]
//	eudrctl [-config file] dds get <uuid> [<uuid>...]
//	eudrctl [-config file] dds get-by-ref <internalReferenceNumber>
//	eudrctl [-config file] dds verify <referenceNumber> <verificationNumber>
//	eudrctl [-config file] dds submit <statement.json>
//	eudrctl [-config file] dds retract <uuid>
//
// Without -config, configuration is read from EUDR_* environment
// variables (a .env file in the working directory is honored).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/mfrntic/eudr-api-client-sub001/internal/config"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/eudr"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/logging"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/submission"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/transport"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "eudrctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("eudrctl", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to YAML configuration file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	rest := flags.Args()
	if len(rest) == 0 {
		return fmt.Errorf("missing command: expected echo or dds")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.Logging.Level)
	log := logging.New(logging.Config{Level: level})

	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch rest[0] {
	case "echo":
		return runEcho(ctx, client, rest[1:])
	case "dds":
		return runDds(ctx, client, rest[1:])
	default:
		return fmt.Errorf("unknown command %q: expected echo or dds", rest[0])
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.FromEnv()
}

func newClient(cfg *config.Config, log logging.Logger) (*eudr.Client, error) {
	tCfg := transport.DefaultConfig()
	tCfg.Timeout = cfg.Transport.Timeout
	tCfg.Retry = transport.RetryConfig{
		MaxRetries:     cfg.Transport.Retry.MaxRetries,
		InitialBackoff: cfg.Transport.Retry.InitialBackoff,
		MaxBackoff:     cfg.Transport.Retry.MaxBackoff,
		Multiplier:     cfg.Transport.Retry.Multiplier,
	}

	return eudr.New(eudr.Config{
		Username:           cfg.Client.Username,
		Password:           cfg.Client.Password,
		WebServiceClientID: cfg.Client.WebServiceClientID,
		EchoEndpoint:       cfg.Client.Endpoints.Echo,
		RetrievalEndpoint:  cfg.Client.Endpoints.Retrieval,
		SubmissionEndpoint: cfg.Client.Endpoints.Submission,
		EchoVersion:        cfg.Client.Versions.Echo,
		RetrievalVersion:   cfg.Client.Versions.Retrieval,
		SubmissionVersion:  cfg.Client.Versions.Submission,
		Transport:          tCfg,
		Logger:             log,
	})
}

func runEcho(ctx context.Context, client *eudr.Client, args []string) error {
	query := "ping"
	if len(args) > 0 {
		query = args[0]
	}

	status, err := client.Echo.Test(ctx, query)
	if err != nil {
		return err
	}
	return printJSON(map[string]string{"status": status})
}

func runDds(ctx context.Context, client *eudr.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing dds subcommand: expected get, get-by-ref, verify, submit, or retract")
	}

	switch args[0] {
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("dds get: at least one uuid is required")
		}
		infos, err := client.Retrieval.GetDdsInfo(ctx, args[1:]...)
		if err != nil {
			return err
		}
		return printJSON(infos)

	case "get-by-ref":
		if len(args) != 2 {
			return fmt.Errorf("dds get-by-ref: exactly one internal reference number is required")
		}
		infos, err := client.Retrieval.GetDdsInfoByInternalReferenceNumber(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(infos)

	case "verify":
		if len(args) != 3 {
			return fmt.Errorf("dds verify: reference number and verification number are required")
		}
		info, err := client.Retrieval.GetStatementByIdentifiers(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		return printJSON(info)

	case "submit":
		if len(args) != 2 {
			return fmt.Errorf("dds submit: a statement JSON file is required")
		}
		stmt, err := readStatement(args[1])
		if err != nil {
			return err
		}
		id, err := client.Submission.SubmitDds(ctx, stmt)
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"ddsIdentifier": id})

	case "retract":
		if len(args) != 2 {
			return fmt.Errorf("dds retract: exactly one uuid is required")
		}
		if err := client.Submission.RetractDds(ctx, args[1]); err != nil {
			return err
		}
		return printJSON(map[string]string{"retracted": args[1]})

	default:
		return fmt.Errorf("unknown dds subcommand %q", args[0])
	}
}

func readStatement(path string) (*submission.Statement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading statement file: %w", err)
	}
	var stmt submission.Statement
	if err := json.Unmarshal(data, &stmt); err != nil {
		return nil, fmt.Errorf("parsing statement file: %w", err)
	}
	return &stmt, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
