package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/wastedyears/internal/models"
)

// OrderKey is one sort key for ListWords
type OrderKey int

const (
	OrderID      OrderKey = iota // word_id ascending
	OrderWord                    // word ascending
	OrderCount                   // total_count descending
	OrderElapsed                 // total_elapsed descending
)

// OrderSpec is a composite sort: the first key is primary, the next breaks ties, and so on
type OrderSpec []OrderKey

// orderLetters maps the one-letter order codes accepted by ParseOrder
var orderLetters = map[rune]OrderKey{
	'i': OrderID,
	'w': OrderWord,
	'c': OrderCount,
	'e': OrderElapsed,
}

// ParseOrder converts a string of order letters to an OrderSpec, e.g. "ec" for
// descending elapsed then descending count.
// Letters: i=id, w=word, c=count, e=elapsed
func ParseOrder(letters string) (OrderSpec, error) {
	letters = strings.ToLower(strings.TrimSpace(letters))
	order := make(OrderSpec, 0, len(letters))
	for _, r := range letters {
		key, ok := orderLetters[r]
		if !ok {
			return nil, fmt.Errorf("invalid order key %q. Use: i (id), w (word), c (count), e (elapsed)", r)
		}
		order = append(order, key)
	}
	return order, nil
}

func (k OrderKey) column() string {
	switch k {
	case OrderWord:
		return "word ASC"
	case OrderCount:
		return "total_count DESC"
	case OrderElapsed:
		return "total_elapsed DESC"
	default:
		return "word_id ASC"
	}
}

// UpsertWords records that task taskID mentions words and lasted elapsed
// seconds. Each distinct word counts once: a new word is inserted with a count
// of 1, a known word has its count and elapsed total bumped. The task is then
// linked to every word. The result maps the newly created words to their IDs.
func (s *Session) UpsertWords(taskID uint, words []string, elapsed int64) (map[string]uint, error) {
	var created map[string]uint
	err := s.atomic(func(tx *gorm.DB) error {
		var err error
		created, err = upsertWords(tx, taskID, words, elapsed)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert words: %w", err)
	}
	return created, nil
}

func upsertWords(tx *gorm.DB, taskID uint, words []string, elapsed int64) (map[string]uint, error) {
	created := make(map[string]uint)
	if len(words) == 0 {
		return created, nil
	}

	seen := make(map[string]bool, len(words))
	links := make([]models.TaskWord, 0, len(words))
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true

		id, isNew, err := upsertWord(tx, w, elapsed)
		if err != nil {
			return nil, err
		}
		if isNew {
			created[w] = id
		}
		links = append(links, models.TaskWord{TaskID: taskID, WordID: id})
	}

	// the pairs are unique per call; the conflict clause only guards against
	// a task being indexed twice
	err := tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "word_id"}},
			DoNothing: true,
		}).
		Create(&links).Error
	if err != nil {
		return nil, wrapConstraint(err)
	}
	return created, nil
}

// upsertWord inserts w or, if it already exists, adds one occurrence of
// elapsed seconds to it. It reports the word's ID and whether it was inserted.
func upsertWord(tx *gorm.DB, w string, elapsed int64) (uint, bool, error) {
	word := models.Word{Word: w, TotalCount: 1, TotalElapsed: elapsed}
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "word"}},
		DoNothing: true,
	}).Create(&word)
	if result.Error != nil {
		return 0, false, wrapConstraint(result.Error)
	}

	isNew := result.RowsAffected > 0
	if !isNew {
		err := tx.Model(&models.Word{}).
			Where("word = ?", w).
			UpdateColumns(map[string]interface{}{
				"total_count":   gorm.Expr("total_count + 1"),
				"total_elapsed": gorm.Expr("COALESCE(total_elapsed, 0) + ?", elapsed),
			}).Error
		if err != nil {
			return 0, false, wrapConstraint(err)
		}
		word.ID = 0
	}

	if word.ID == 0 {
		if err := tx.Model(&models.Word{}).Select("word_id").Where("word = ?", w).Scan(&word.ID).Error; err != nil {
			return 0, false, err
		}
		if word.ID == 0 {
			return 0, false, fmt.Errorf("word %q not found after upsert", w)
		}
	}
	return word.ID, isNew, nil
}

// ListWords returns every word with its lifetime aggregates, sorted by order.
// An empty order sorts by ID.
func (s *Session) ListWords(order OrderSpec) ([]models.WordInfo, error) {
	q := s.conn().Model(&models.Word{})
	for _, key := range order {
		q = q.Order(key.column())
	}
	if len(order) == 0 {
		q = q.Order(OrderID.column())
	}

	var words []models.Word
	if err := q.Find(&words).Error; err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}

	infos := make([]models.WordInfo, 0, len(words))
	for _, w := range words {
		infos = append(infos, models.WordInfo{
			ID:           w.ID,
			Word:         w.Word,
			TotalCount:   w.TotalCount,
			TotalElapsed: w.TotalElapsed,
		})
	}
	return infos, nil
}
