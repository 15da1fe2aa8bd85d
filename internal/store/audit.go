package store

import "github.com/craftlens/craftlens/internal/models"

// LoadAudit reads the submission audit log, newest entries last.
func (l *Local) LoadAudit() []models.SubmittedRecord {
	var records []models.SubmittedRecord
	l.readJSON(auditFile, &records)
	return records
}

// AppendAudit appends one submission record, keeping a rolling window of
// the most recent entries.
func (l *Local) AppendAudit(record models.SubmittedRecord) {
	records := l.LoadAudit()
	records = append(records, record)
	if len(records) > AuditCap {
		records = records[len(records)-AuditCap:]
	}
	l.writeJSON(auditFile, records)
}
