package storage

import (
	"encoding/json"
	"errors"

	"nqueens/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeProfiles(p model.ProfileSet) ([]byte, error) {
	return json.Marshal(p)
}

func DecodeProfiles(data []byte) (model.ProfileSet, error) {
	var profiles model.ProfileSet
	if err := json.Unmarshal(data, &profiles); err != nil {
		return model.ProfileSet{}, err
	}
	if err := checkVersion(profiles.VersionedRecord); err != nil {
		return model.ProfileSet{}, err
	}
	return profiles, nil
}

func EncodeRunRecord(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRunRecord(data []byte) (model.RunRecord, error) {
	var record model.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return record, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
