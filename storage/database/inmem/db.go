package inmemdb

import (
	"sync"

	"github.com/trezcool/orientation/core/assessment"
	"github.com/trezcool/orientation/core/profile"
)

type (
	DB struct {
		profile    *profileTable
		testResult *testResultTable
	}

	profileTable struct {
		sync.RWMutex
		table map[string]*profile.Profile
	}

	testResultTable struct {
		sync.RWMutex
		table map[string]*assessment.TestResult
	}
)

func Open() *DB {
	return &DB{
		profile:    &profileTable{table: make(map[string]*profile.Profile)},
		testResult: &testResultTable{table: make(map[string]*assessment.TestResult)},
	}
}

// Truncate empties every table.
func (db *DB) Truncate() {
	db.profile.Lock()
	db.profile.table = make(map[string]*profile.Profile)
	db.profile.Unlock()

	db.testResult.Lock()
	db.testResult.table = make(map[string]*assessment.TestResult)
	db.testResult.Unlock()
}
