package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoRowsAffected is returned when an insert that must create a row did not.
var ErrNoRowsAffected = errors.New("no rows affected")

// MaxTagLength is the tag column width in characters.
const MaxTagLength = 100

// TagsFit reports whether every tag fits the tag column.
func TagsFit(tags []string) bool {
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return false
		}
	}
	return true
}

// ParseTags splits a comma separated tag string into a normalized tag set.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(raw, ","))
}

// NormalizeTags trims every tag, drops empty entries and removes
// duplicates. The first occurrence keeps its position.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// tagRow is a (parent, tag) association row.
type tagRow interface {
	ParentID() uint
	TagValue() string
}

// tagAssociation manages the tag set of one parent table. Tag sets are
// always written whole: replace deletes every row of the parent and inserts
// the new set.
type tagAssociation[T tagRow] struct {
	// parentTable is locked while a set is replaced.
	parentTable string
	// column is the parent key column in the tag table.
	column string
	newRow func(parentID uint, tag string) T
}

// createWithTags inserts parent and its tags in one transaction.
func (a tagAssociation[T]) createWithTags(db *gorm.DB, parent interface{}, parentID func() uint, tags []string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Omit(clause.Associations).Create(parent)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoRowsAffected
		}
		return a.insert(tx, parentID(), tags)
	})
}

// replace swaps the tag set of parentID. tx must be a transaction; the
// parent row is locked first so concurrent replaces of one parent run one
// after the other.
func (a tagAssociation[T]) replace(tx *gorm.DB, parentID uint, tags []string) error {
	var locked []uint
	if err := tx.Table(a.parentTable).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", parentID).
		Pluck("id", &locked).Error; err != nil {
		return err
	}
	if len(locked) == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := tx.Where(a.column+" = ?", parentID).Delete(new(T)).Error; err != nil {
		return fmt.Errorf("delete tags: %w", err)
	}
	return a.insert(tx, parentID, tags)
}

func (a tagAssociation[T]) insert(tx *gorm.DB, parentID uint, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	rows := make([]T, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, a.newRow(parentID, tag))
	}
	if err := tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error; err != nil {
		return fmt.Errorf("insert tags: %w", err)
	}
	return nil
}

// deleteAll removes every tag of parentID.
func (a tagAssociation[T]) deleteAll(tx *gorm.DB, parentID uint) error {
	return tx.Where(a.column+" = ?", parentID).Delete(new(T)).Error
}

// load returns the sorted tag set of every parent in parentIDs. Parents
// without tags map to an empty slice.
func (a tagAssociation[T]) load(db *gorm.DB, parentIDs []uint) (map[uint][]string, error) {
	out := make(map[uint][]string, len(parentIDs))
	for _, id := range parentIDs {
		out[id] = []string{}
	}
	if len(parentIDs) == 0 {
		return out, nil
	}

	var rows []T
	if err := db.Where(a.column+" IN ?", parentIDs).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	for _, row := range rows {
		out[row.ParentID()] = append(out[row.ParentID()], row.TagValue())
	}
	for id := range out {
		sort.Strings(out[id])
	}
	return out, nil
}
