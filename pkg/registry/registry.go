package registry

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	kpool "github.com/mdaops/axon/pkg/db/postgres/pool"
)

var (
	ErrNotFound      = errors.New("artifact is not found")
	ErrAlreadyExists = errors.New("artifact already exists")
)

// Artifact is a record of something a pipeline step pushed
// to the object store.
//
// The registry remembers WHERE an artifact is, not its content.
// The content stays in SeaweedFS.
type Artifact struct {
	Name      string
	Version   string
	Kind      string // "dataset", "model", "report", ...
	URI       string // "s3://bucket/key"
	Digest    string // sha256, hex
	Size      int64
	CreatedAt time.Time
}

// Finder query to Find.
//
// Zero-value fields do not narrow the result.
type Query struct {
	Name string
	Kind string
}

type Registry interface {
	// Record stores the artifact.
	//
	// (name, version) is identity. Recording the same identity
	// twice returns ErrAlreadyExists, and the stored row is kept.
	Record(ctx context.Context, a Artifact) error

	// Get returns the artifact with the given name and version.
	//
	// When no such artifact is recorded, it returns ErrNotFound.
	Get(ctx context.Context, name string, version string) (Artifact, error)

	// Find lists artifacts matching the query, newest first.
	Find(ctx context.Context, q Query) ([]Artifact, error)

	// Latest returns the newest recorded version of name.
	//
	// When no version is recorded, it returns ErrNotFound.
	Latest(ctx context.Context, name string) (Artifact, error)
}

type pgRegistry struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) Registry {
	return &pgRegistry{pool: pool}
}

func (r *pgRegistry) Record(ctx context.Context, a Artifact) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(
		ctx,
		`
		INSERT INTO "artifact" ("name", "version", "kind", "uri", "digest", "size")
		VALUES ($1, $2, $3, $4, $5, $6)
		`,
		a.Name, a.Version, a.Kind, a.URI, a.Digest, a.Size,
	)
	if err != nil {
		if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) {
			if pgerr.Code == pgerrcode.UniqueViolation {
				return ErrAlreadyExists
			}
		}
		return err
	}
	return nil
}

const artifactColumns = `"name", "version", "kind", "uri", "digest", "size", "created_at"`

func scanArtifact(row pgx.Row) (Artifact, error) {
	a := Artifact{}
	err := row.Scan(
		&a.Name, &a.Version, &a.Kind, &a.URI, &a.Digest, &a.Size, &a.CreatedAt,
	)
	return a, err
}

func (r *pgRegistry) Get(ctx context.Context, name string, version string) (Artifact, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return Artifact{}, err
	}
	defer conn.Release()

	a, err := scanArtifact(conn.QueryRow(
		ctx,
		`SELECT `+artifactColumns+` FROM "artifact" WHERE "name" = $1 AND "version" = $2`,
		name, version,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Artifact{}, ErrNotFound
		}
		return Artifact{}, err
	}
	return a, nil
}

func (r *pgRegistry) Find(ctx context.Context, q Query) ([]Artifact, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		SELECT `+artifactColumns+` FROM "artifact"
		WHERE ($1 = '' OR "name" = $1)
		  AND ($2 = '' OR "kind" = $2)
		ORDER BY "created_at" DESC
		`,
		q.Name, q.Kind,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := []Artifact{}
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, a)
	}
	return found, rows.Err()
}

func (r *pgRegistry) Latest(ctx context.Context, name string) (Artifact, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return Artifact{}, err
	}
	defer conn.Release()

	a, err := scanArtifact(conn.QueryRow(
		ctx,
		`
		SELECT `+artifactColumns+` FROM "artifact"
		WHERE "name" = $1
		ORDER BY "created_at" DESC LIMIT 1
		`,
		name,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Artifact{}, ErrNotFound
		}
		return Artifact{}, err
	}
	return a, nil
}
