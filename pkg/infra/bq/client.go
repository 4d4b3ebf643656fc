package bq

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type Client struct {
	bqClient *bigquery.Client
	dataset  string
	tableID  types.BQTableID
}

var _ interfaces.BigQuery = (*Client)(nil)

func New(ctx context.Context, projectID types.GoogleProjectID, datasetID types.BQDatasetID, tableID types.BQTableID, options ...option.ClientOption) (*Client, error) {
	bqClient, err := bigquery.NewClient(ctx, projectID.String(), options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create BigQuery client", goerr.V("projectID", projectID))
	}

	return &Client{
		bqClient: bqClient,
		dataset:  datasetID.String(),
		tableID:  tableID,
	}, nil
}

func (x *Client) Close() error {
	if err := x.bqClient.Close(); err != nil {
		return goerr.Wrap(err, "failed to close BigQuery client")
	}
	return nil
}

func (x *Client) table() *bigquery.Table {
	return x.bqClient.Dataset(x.dataset).Table(x.tableID.String())
}

// CreateTable implements interfaces.BigQuery.
func (x *Client) CreateTable(ctx context.Context, md *bigquery.TableMetadata) error {
	if err := x.table().Create(ctx, md); err != nil {
		return goerr.Wrap(err, "failed to create table", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID))
	}
	return nil
}

// GetMetadata implements interfaces.BigQuery. If the table does not exist, it returns nil.
func (x *Client) GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error) {
	md, err := x.table().Metadata(ctx)
	if err != nil {
		if gErr, ok := err.(*googleapi.Error); ok && gErr.Code == 404 {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get table metadata", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID))
	}

	return md, nil
}

// UpdateTable implements interfaces.BigQuery.
func (x *Client) UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
	if _, err := x.table().Update(ctx, md, eTag); err != nil {
		return goerr.Wrap(err, "failed to update table", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID), goerr.V("meta", md))
	}

	return nil
}

// Insert implements interfaces.BigQuery. data is encoded through its JSON form, and fields
// that are not in schema are rejected.
func (x *Client) Insert(ctx context.Context, schema bigquery.Schema, data any) error {
	row, err := NewRow(schema, data)
	if err != nil {
		return err
	}

	if err := x.table().Inserter().Put(ctx, row); err != nil {
		return goerr.Wrap(err, "failed to insert row", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID))
	}
	return nil
}

// InsertIDer lets a record supply the best-effort deduplication ID of its row
type InsertIDer interface {
	InsertID() string
}

// Row is a bigquery.ValueSaver built from the JSON form of a record
type Row struct {
	values   map[string]bigquery.Value
	insertID string
}

var _ bigquery.ValueSaver = (*Row)(nil)

func NewRow(schema bigquery.Schema, data any) (*Row, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal record", goerr.V("data", data))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var decoded map[string]any
	if err := dec.Decode(&decoded); err != nil {
		return nil, goerr.Wrap(err, "record is not a JSON object", goerr.V("raw", string(raw)))
	}

	known := make(map[string]struct{}, len(schema))
	for _, field := range schema {
		known[field.Name] = struct{}{}
	}

	values := make(map[string]bigquery.Value, len(decoded))
	for key, value := range decoded {
		name := ColumnName(key)
		if _, ok := known[name]; !ok {
			return nil, goerr.New("field is not in table schema", goerr.V("field", key), goerr.V("column", name))
		}
		values[name] = sanitizeValue(value)
	}

	row := &Row{values: values, insertID: bigquery.NoDedupeID}
	if ider, ok := data.(InsertIDer); ok {
		row.insertID = ider.InsertID()
	}
	return row, nil
}

// Save implements bigquery.ValueSaver.
func (x *Row) Save() (map[string]bigquery.Value, string, error) {
	return x.values, x.insertID, nil
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		res := make(map[string]any, len(val))
		for key, value := range val {
			res[ColumnName(key)] = sanitizeValue(value)
		}
		return res
	case []any:
		for i := range val {
			val[i] = sanitizeValue(val[i])
		}
		return val
	default:
		return v
	}
}

var invalidColumnChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// ColumnName maps a JSON key to a valid BigQuery column name
func ColumnName(name string) string {
	if name == "" {
		return "_"
	}
	name = invalidColumnChars.ReplaceAllString(name, "_")
	if c := name[0]; c >= '0' && c <= '9' {
		name = "_" + name
	}
	return name
}
