package storage

import (
	"database/sql"
	"strings"

	"github.com/dgallion1/docmap/internal/doctree"
)

// Record is one flattened tree node as stored in the database.
type Record struct {
	ID          int64
	Tree        string
	ParentID    int64 // 0 for roots
	Path        string
	Name        string
	Prefix      string
	Kind        string
	Depth       int
	SourceFile  string
	Line        int
	Signature   string
	OriginIndex int
	Type        string
	Doc         string
}

// InsertTree flattens a documentation tree into node rows. A previous
// export of the same root is replaced. Returns the number of rows
// inserted.
func (db *DB) InsertTree(n *doctree.Node) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	root := n.FullPath()
	if _, err := tx.Exec(`DELETE FROM nodes WHERE tree = ?`, root); err != nil {
		return 0, err
	}

	count, err := insertSubtree(tx, root, 0, n)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

func insertSubtree(tx *sql.Tx, tree string, parentID int64, n *doctree.Node) (int64, error) {
	var parent interface{}
	if parentID != 0 {
		parent = parentID
	}
	result, err := tx.Exec(
		`INSERT INTO nodes (tree, parent_id, path, name, prefix, kind, depth, source_file, line, signature, origin_index, type, doc)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tree, parent, n.FullPath(), n.Name, n.Prefix, string(n.Kind), n.Depth,
		n.SourceFile, n.Line, n.Signature, n.OriginIndex, n.Type, docText(n),
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	count := int64(1)
	for _, m := range n.Members {
		c, err := insertSubtree(tx, tree, id, m)
		if err != nil {
			return 0, err
		}
		count += c
	}
	return count, nil
}

func docText(n *doctree.Node) string {
	if n.Docstring == nil {
		return ""
	}
	parts := make([]string, 0, len(n.Docstring.Sections))
	for _, s := range n.Docstring.Sections {
		parts = append(parts, s.Markdown())
	}
	return strings.Join(parts, "\n\n")
}

const recordColumns = `id, tree, parent_id, path, name, prefix, kind, depth, source_file, line, signature, origin_index, type, doc`

// GetByPath returns the stored node with the given fully qualified path
func (db *DB) GetByPath(path string) (*Record, error) {
	row := db.conn.QueryRow(
		`SELECT `+recordColumns+` FROM nodes WHERE path = ?`, path,
	)
	return scanRecord(row)
}

// ListByKind returns all stored nodes of the given kind, ordered by path
func (db *DB) ListByKind(kind string) ([]*Record, error) {
	rows, err := db.conn.Query(
		`SELECT `+recordColumns+` FROM nodes WHERE kind = ? ORDER BY path`, kind,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Children returns the direct members of a stored node in insertion
// order, which preserves the tree's member ordering.
func (db *DB) Children(id int64) ([]*Record, error) {
	rows, err := db.conn.Query(
		`SELECT `+recordColumns+` FROM nodes WHERE parent_id = ? ORDER BY id`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Roots returns the root node of every exported tree
func (db *DB) Roots() ([]*Record, error) {
	rows, err := db.conn.Query(
		`SELECT `+recordColumns+` FROM nodes WHERE parent_id IS NULL ORDER BY path`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// DeleteTree removes an exported tree and returns the number of rows removed
func (db *DB) DeleteTree(root string) (int64, error) {
	result, err := db.conn.Exec(`DELETE FROM nodes WHERE tree = ?`, root)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Count returns the total number of stored nodes
func (db *DB) Count() (int64, error) {
	var count int64
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&count)
	return count, err
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanInto(s scannable, r *Record) error {
	var parent sql.NullInt64
	var prefix, sourceFile, signature, typ, doc sql.NullString
	err := s.Scan(&r.ID, &r.Tree, &parent, &r.Path, &r.Name, &prefix, &r.Kind,
		&r.Depth, &sourceFile, &r.Line, &signature, &r.OriginIndex, &typ, &doc)
	if err != nil {
		return err
	}
	if parent.Valid {
		r.ParentID = parent.Int64
	}
	if prefix.Valid {
		r.Prefix = prefix.String
	}
	if sourceFile.Valid {
		r.SourceFile = sourceFile.String
	}
	if signature.Valid {
		r.Signature = signature.String
	}
	if typ.Valid {
		r.Type = typ.String
	}
	if doc.Valid {
		r.Doc = doc.String
	}
	return nil
}

func scanRecord(row *sql.Row) (*Record, error) {
	var r Record
	if err := scanInto(row, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func scanRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		var r Record
		if err := scanInto(rows, &r); err != nil {
			return nil, err
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}
