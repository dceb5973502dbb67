package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"

	"github.com/atrika/airdrum/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

// Result is one finished session as persisted.
type Result struct {
	Profile    string
	Stats      game.Stats
	ReplayPath string // sample recording for deterministic re-runs, may be empty
}

// History keeps per-chart session results in a local sqlite database.
type History struct {
	db *sql.DB
}

func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, fmt.Errorf("unable to open history db: %w", err)
	}

	initStatement := `
	create table if not exists results
	  (
		  id integer not null primary key,
		  sum text,
		  profile text,
		  stats bytearray,
		  replay text
	  );
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, fmt.Errorf("unable to init history db: %w", err)
	}

	return &History{db: db}, nil
}

func (h *History) Close() {
	if nil != h.db {
		h.db.Close()
	}
}

// hashChart fingerprints the chart contents, not the file, so a re-exported
// chart with identical notes keeps its history.
func hashChart(c *game.Chart) string {
	hash := sha256.New()
	fmt.Fprintf(hash, "%v/%v\n", c.SongID, c.Difficulty)
	for _, n := range c.Notes {
		fmt.Fprintf(hash, "%v %v %v\n", n.Time, n.Target, n.Hand)
	}
	return base64.StdEncoding.EncodeToString(hash.Sum(nil))
}

func (h *History) Save(c *game.Chart, result Result) error {
	data, err := json.Marshal(result.Stats)
	if nil != err {
		return fmt.Errorf("unable to marshal stats: %w", err)
	}
	_, err = h.db.Exec("insert into results(sum, profile, stats, replay) values(?, ?, ?, ?)",
		hashChart(c), result.Profile, data, result.ReplayPath)
	if nil != err {
		return fmt.Errorf("unable to save result: %w", err)
	}
	return nil
}

func (h *History) Load(c *game.Chart) []Result {
	results := []Result{}
	rows, err := h.db.Query("select profile, stats, replay from results where sum = ?", hashChart(c))
	if nil != err && err != sql.ErrNoRows {
		log.Println("unable to load results", err)
		return results
	}
	defer rows.Close()
	for rows.Next() {
		var result Result
		var stats []byte
		if err := rows.Scan(&result.Profile, &stats, &result.ReplayPath); nil != err {
			log.Println("unable to scan result row", err)
			continue
		}
		if err := json.Unmarshal(stats, &result.Stats); nil != err {
			log.Println("unable to unmarshal result stats", err)
			continue
		}
		results = append(results, result)
	}
	return results
}
