package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/infra/bq"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"
)

type BigQuery struct {
	projectID                 types.GoogleProjectID
	datasetID                 types.BQDatasetID
	tableID                   types.BQTableID
	impersonateServiceAccount string
}

func (x *BigQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bigquery-project-id",
			Usage:       "BigQuery project ID for commit event export",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("REPOHOST_BIGQUERY_PROJECT_ID"),
			Destination: (*string)(&x.projectID),
		},
		&cli.StringFlag{
			Name:        "bigquery-dataset-id",
			Usage:       "BigQuery dataset ID",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("REPOHOST_BIGQUERY_DATASET_ID"),
			Destination: (*string)(&x.datasetID),
		},
		&cli.StringFlag{
			Name:        "bigquery-table-id",
			Usage:       "BigQuery table ID",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("REPOHOST_BIGQUERY_TABLE_ID"),
			Value:       "commits",
			Destination: (*string)(&x.tableID),
		},
		&cli.StringFlag{
			Name:        "bigquery-impersonate-service-account",
			Usage:       "Service account to impersonate for BigQuery",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("REPOHOST_BIGQUERY_IMPERSONATE_SERVICE_ACCOUNT"),
			Destination: &x.impersonateServiceAccount,
		},
	}
}

func (x *BigQuery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("projectID", x.projectID),
		slog.Any("datasetID", x.datasetID),
		slog.Any("tableID", x.tableID),
		slog.String("impersonateServiceAccount", x.impersonateServiceAccount),
	)
}

// NewClient returns nil without error when export is not configured
func (x *BigQuery) NewClient(ctx context.Context) (*bq.Client, error) {
	if x.projectID == "" && x.datasetID == "" {
		return nil, nil
	}
	if x.projectID == "" || x.datasetID == "" {
		return nil, goerr.New("both of BigQuery project ID and dataset ID are required",
			goerr.V("projectID", x.projectID),
			goerr.V("datasetID", x.datasetID),
		)
	}

	var options []option.ClientOption
	if x.impersonateServiceAccount != "" {
		ts, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
			TargetPrincipal: x.impersonateServiceAccount,
			Scopes: []string{
				"https://www.googleapis.com/auth/bigquery",
				"https://www.googleapis.com/auth/cloud-platform",
			},
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create impersonated token source",
				goerr.V("serviceAccount", x.impersonateServiceAccount))
		}
		options = append(options, option.WithTokenSource(ts))
	}

	return bq.New(ctx, x.projectID, x.datasetID, x.tableID, options...)
}
