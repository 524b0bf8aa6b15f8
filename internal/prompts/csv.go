package prompts

import (
	"encoding/csv"
	"os"
	"strings"

	"list-blitz/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one CSV row: pack,pack_title,product_id,text.
type Record struct {
	PackKey   string
	PackTitle string
	ProductID string
	Text      string
}

func ReadCSV(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var records []Record
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 4 {
			continue
		}
		record := Record{
			PackKey:   strings.TrimSpace(row[0]),
			PackTitle: strings.TrimSpace(row[1]),
			ProductID: strings.TrimSpace(row[2]),
			Text:      strings.TrimSpace(row[3]),
		}
		if record.PackKey == "" || record.Text == "" {
			continue
		}
		if record.PackTitle == "" {
			record.PackTitle = record.PackKey
		}
		records = append(records, record)
	}
	return records, nil
}

// Import upserts packs and their prompts. It returns the number of prompt rows
// written or already present.
func Import(conn *gorm.DB, records []Record) (int, error) {
	if conn == nil {
		return 0, nil
	}
	seenPacks := make(map[string]struct{})
	inserted := 0
	for _, record := range records {
		if _, ok := seenPacks[record.PackKey]; !ok {
			pack := db.PromptPack{
				Key:       record.PackKey,
				Title:     record.PackTitle,
				ProductID: record.ProductID,
			}
			err := conn.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"title", "product_id", "updated_at"}),
			}).Create(&pack).Error
			if err != nil {
				return inserted, err
			}
			seenPacks[record.PackKey] = struct{}{}
		}
		entry := db.PromptLibrary{PackKey: record.PackKey, Text: record.Text}
		if err := conn.FirstOrCreate(&entry, db.PromptLibrary{PackKey: entry.PackKey, Text: entry.Text}).Error; err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
