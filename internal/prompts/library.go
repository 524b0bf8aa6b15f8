package prompts

import (
	"sort"
	"sync"

	"list-blitz/internal/db"

	"gorm.io/gorm"
)

// Pack is a named list of category prompts. Packs with a ProductID are sold
// separately; an empty ProductID means the pack is free.
type Pack struct {
	Key       string   `json:"key"`
	Title     string   `json:"title"`
	ProductID string   `json:"product_id,omitempty"`
	Prompts   []string `json:"-"`
}

func (p Pack) Free() bool {
	return p.ProductID == ""
}

type Library struct {
	mu    sync.RWMutex
	packs map[string]Pack
}

func NewLibrary(packs ...Pack) *Library {
	lib := &Library{packs: make(map[string]Pack)}
	for _, pack := range packs {
		lib.Put(pack)
	}
	return lib
}

func (l *Library) Put(pack Pack) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.packs[pack.Key] = pack
}

func (l *Library) Pack(key string) (Pack, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	pack, ok := l.packs[key]
	return pack, ok
}

// Packs lists every pack sorted by key.
func (l *Library) Packs() []Pack {
	l.mu.RLock()
	defer l.mu.RUnlock()
	list := make([]Pack, 0, len(l.packs))
	for _, pack := range l.packs {
		list = append(list, pack)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Key < list[j].Key
	})
	return list
}

// LoadLibrary reads packs and prompts from the database. Without a connection,
// or when the tables are empty, the built-in packs are used.
func LoadLibrary(conn *gorm.DB) (*Library, error) {
	if conn == nil {
		return DefaultLibrary(), nil
	}
	var packs []db.PromptPack
	if err := conn.Order("key").Find(&packs).Error; err != nil {
		return nil, err
	}
	if len(packs) == 0 {
		return DefaultLibrary(), nil
	}
	var rows []db.PromptLibrary
	if err := conn.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	byPack := make(map[string][]string)
	for _, row := range rows {
		byPack[row.PackKey] = append(byPack[row.PackKey], row.Text)
	}
	lib := NewLibrary()
	for _, pack := range packs {
		lib.Put(Pack{
			Key:       pack.Key,
			Title:     pack.Title,
			ProductID: pack.ProductID,
			Prompts:   byPack[pack.Key],
		})
	}
	return lib, nil
}

func DefaultLibrary() *Library {
	return NewLibrary(
		Pack{
			Key:   "classic",
			Title: "Classic",
			Prompts: []string{
				"Things you find in a kitchen",
				"Animals that live in the ocean",
				"Fruits",
				"Board games",
				"Countries in Europe",
				"Things that are yellow",
				"Sports played with a ball",
				"Musical instruments",
				"Pizza toppings",
				"Breakfast foods",
			},
		},
		Pack{
			Key:       "movies",
			Title:     "Movie Night",
			ProductID: "listblitz.pack.movies",
			Prompts: []string{
				"Animated movies",
				"Movie villains",
				"Films with a number in the title",
				"Superheroes",
				"Movies set in space",
				"Famous movie quotes",
			},
		},
		Pack{
			Key:       "travel",
			Title:     "Around the World",
			ProductID: "listblitz.pack.travel",
			Prompts: []string{
				"Capital cities",
				"Famous landmarks",
				"Islands",
				"Things you pack for a trip",
				"Airlines",
			},
		},
	)
}
