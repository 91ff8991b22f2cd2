package models

// SnapshotV1 is the on-disk envelope for the record arena. Record values
// are raw codec bytes; JSON base64-encodes them. The explicit version
// field leaves room for future format migrations at load time.
type SnapshotV1 struct {
	Version int               `json:"version"`
	Records map[string][]byte `json:"records"`
}

const SnapshotVersion = 1

func NewSnapshot(records map[StorageKey][]byte) *SnapshotV1 {
	out := &SnapshotV1{
		Version: SnapshotVersion,
		Records: make(map[string][]byte, len(records)),
	}
	for key, val := range records {
		out.Records[string(key)] = val
	}
	return out
}

func (s *SnapshotV1) ToRecords() map[StorageKey][]byte {
	out := make(map[StorageKey][]byte, len(s.Records))
	for key, val := range s.Records {
		out[StorageKey(key)] = val
	}
	return out
}
