package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/couchbase/gocbqueryx"
	"github.com/couchbase/gocbqueryx/cbqueryx"
	"github.com/couchbase/gocbqueryx/transactionsx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var connStrFlag = flag.String("connstr", "", "the connection string of the cluster to query")
var userFlag = flag.String("u", "", "the username to authenticate with")
var passFlag = flag.String("p", "", "the password to authenticate with")
var configFlag = flag.String("config", "", "a yaml file holding connection details and query defaults")
var formatFlag = flag.String("format", "json", "the output format, json or yaml")
var txnFlag = flag.Bool("txn", false, "run the statement as an implicit single statement transaction")
var verboseFlag = flag.Bool("v", false, "whether to use verbose logging")

type cliConfig struct {
	ConnStr  string `yaml:"connstr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	QueryContext    string        `yaml:"queryContext"`
	Timeout         time.Duration `yaml:"timeout"`
	ReadOnly        bool          `yaml:"readOnly"`
	ScanConsistency string        `yaml:"scanConsistency"`
	Profile         string        `yaml:"profile"`
}

type cliMetaData struct {
	RequestID       string                  `json:"requestId" yaml:"requestId"`
	ClientContextID string                  `json:"clientContextId" yaml:"clientContextId"`
	Status          cbqueryx.QueryStatus    `json:"status" yaml:"status"`
	Warnings        []cbqueryx.QueryWarning `json:"warnings" yaml:"warnings"`
	Metrics         *cbqueryx.QueryMetrics  `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Signature       interface{}             `json:"signature,omitempty" yaml:"signature,omitempty"`
	Profile         interface{}             `json:"profile,omitempty" yaml:"profile,omitempty"`
}

type cliOutput struct {
	Rows          []interface{} `json:"rows" yaml:"rows"`
	Meta          cliMetaData   `json:"meta" yaml:"meta"`
	Error         string        `json:"error,omitempty" yaml:"error,omitempty"`
	RetryAttempts int           `json:"retryAttempts" yaml:"retryAttempts"`
}

func loadConfig(path string) (*cliConfig, error) {
	cfg := &cliConfig{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decodeOpaque turns an encoded row back into a value both encoders can
// print.  Bytes that are not JSON are printed as a string.
func decodeOpaque(data []byte) interface{} {
	if data == nil {
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return v
}

// implicitTransactionOptions describes a statement the service runs in a
// transaction of its own.  The service starts that transaction, so no txid
// is sent.
func implicitTransactionOptions(
	statement string,
	cfg *cliConfig,
	opts cbqueryx.BuiltQueryOptions,
) transactionsx.TransactionQueryOptions {
	return transactionsx.TransactionQueryOptions{
		Statement:    statement,
		QueryContext: cfg.QueryContext,
		Options:      opts,
		TxImplicit:   true,
		TxTimeout:    cfg.Timeout,
	}
}

func main() {
	flag.Parse()

	var logger *zap.Logger
	if !*verboseFlag {
		logger, _ = zap.NewDevelopment(
			zap.IncreaseLevel(zapcore.InfoLevel))
	} else {
		logger, _ = zap.NewDevelopment()
	}

	statement := strings.Join(flag.Args(), " ")
	if statement == "" {
		logger.Fatal("must specify a statement to run")
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if *connStrFlag != "" {
		cfg.ConnStr = *connStrFlag
	}
	if *userFlag != "" {
		cfg.Username = *userFlag
	}
	if *passFlag != "" {
		cfg.Password = *passFlag
	}
	if cfg.ConnStr == "" {
		logger.Fatal("must specify a connection string")
	}

	connCfg, err := gocbqueryx.ParseConnStr(cfg.ConnStr)
	if err != nil {
		logger.Fatal("failed to parse connection string", zap.Error(err))
	}

	logger.Debug("resolved query endpoints",
		zap.Strings("endpoints", connCfg.Endpoints))

	qc := gocbqueryx.NewQueryComponent(
		gocbqueryx.NewRetryManagerDefault(),
		&gocbqueryx.QueryComponentConfig{
			HttpRoundTripper: http.DefaultTransport,
			Endpoints:        connCfg.Endpoints,
			Authenticator: &gocbqueryx.PasswordAuthenticator{
				Username: cfg.Username,
				Password: cfg.Password,
			},
		},
		&gocbqueryx.QueryComponentOptions{
			Logger: logger,
		})

	opts := cbqueryx.DefaultBuiltQueryOptions()
	opts.ReadOnly = cfg.ReadOnly
	opts.Timeout = cfg.Timeout
	opts.ScanConsistency = cbqueryx.ScanConsistency(cfg.ScanConsistency)
	opts.Profile = cbqueryx.ProfileMode(cfg.Profile)

	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	var result cbqueryx.QueryResult
	var errCtx cbqueryx.QueryErrorContext
	var opErr error
	if *txnFlag {
		txResult := qc.TransactionQuery(ctx, implicitTransactionOptions(statement, cfg, opts), nil)
		result = txResult.Result
		errCtx = txResult.Context.QueryContext
		opErr = txResult.Context.Err
	} else {
		result, errCtx, opErr = qc.Query(ctx, statement, cfg.QueryContext, opts)
	}

	out := cliOutput{
		Rows: make([]interface{}, 0, len(result.Rows)),
		Meta: cliMetaData{
			RequestID:       result.Meta.RequestID,
			ClientContextID: result.Meta.ClientContextID,
			Status:          result.Meta.Status,
			Warnings:        result.Meta.Warnings,
			Metrics:         result.Meta.Metrics,
			Signature:       decodeOpaque(result.Meta.Signature),
			Profile:         decodeOpaque(result.Meta.Profile),
		},
		RetryAttempts: errCtx.RetryAttempts,
	}
	for _, row := range result.Rows {
		out.Rows = append(out.Rows, decodeOpaque(row))
	}
	if opErr != nil {
		out.Error = opErr.Error()
	}

	var encoded []byte
	switch *formatFlag {
	case "json":
		encoded, err = json.MarshalIndent(out, "", "  ")
	case "yaml":
		encoded, err = yaml.Marshal(out)
	default:
		logger.Fatal("unsupported output format", zap.String("format", *formatFlag))
	}
	if err != nil {
		logger.Fatal("failed to encode result", zap.Error(err))
	}
	fmt.Println(string(encoded))

	if errCtx.Err != nil {
		logger.Info("query failed",
			zap.String("clientContextId", errCtx.ClientContextID),
			zap.String("endpoint", errCtx.LastDispatchedTo),
			zap.Int("httpStatus", errCtx.HTTPStatus),
			zap.Error(errCtx.Err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
