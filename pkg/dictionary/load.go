package dictionary

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// LoadFile reads one word per line from path. Words are trimmed and lowercased, lines starting
// with # are skipped, and the result is sorted without duplicates.
func LoadFile(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err := validate(word); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sortWords(words), nil
}

// BigQueryConfig locates a table of words with the columns word_key, scope and obscure.
type BigQueryConfig struct {
	Project  string
	Table    string
	Location string

	// Scope selects the rows to read. It is required.
	Scope          string
	IncludeObscure bool
}

func (c BigQueryConfig) withDefaults() BigQueryConfig {
	if c.Project == "" {
		c.Project = "xword-x"
	}
	if c.Table == "" {
		c.Table = "xword-x.FirestoreQuery.all_words"
	}
	if c.Location == "" {
		c.Location = "US"
	}
	return c
}

// LoadBigQuery reads the words of one scope from BigQuery.
func LoadBigQuery(ctx context.Context, config BigQueryConfig) ([]string, error) {
	if config.Scope == "" {
		return nil, errors.New("bigquery scope must not be empty")
	}
	config = config.withDefaults()

	client, err := bigquery.NewClient(ctx, config.Project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	q := client.Query(fmt.Sprintf(
		"SELECT word_key FROM `%s` WHERE scope = @scope AND (@includeObscure OR NOT obscure)", config.Table))
	q.Location = config.Location
	q.Parameters = []bigquery.QueryParameter{
		{Name: "scope", Value: config.Scope},
		{Name: "includeObscure", Value: config.IncludeObscure},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}
	return readWords(it)
}

// rowIterator is the part of *bigquery.RowIterator readWords needs.
type rowIterator interface {
	Next(dst any) error
}

func readWords(it rowIterator) ([]string, error) {
	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		if len(row) == 0 {
			return nil, errors.New("empty row")
		}

		word, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		if err := validate(word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return sortWords(words), nil
}
