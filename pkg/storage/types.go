package storage

import (
	"fmt"
	"path"
	"time"
)

type DiskStorage struct {
	RootFolder string
}

func NewDiskStorage(rootFolder string) *DiskStorage {
	return &DiskStorage{
		RootFolder: rootFolder,
	}
}

func (ds *DiskStorage) GetFileName(name string) (string, string) {
	fileName := path.Join(ds.RootFolder, name)
	tmpFileName := fileName + ".tmp-" + fmt.Sprintf("%d", time.Now().UnixMilli())
	return fileName, tmpFileName
}

type format int

const (
	formatJson format = iota
	formatGzippedJson
	formatYaml
)

func formatFromName(name string) format {
	switch path.Ext(name) {
	case ".gz", ".jz":
		return formatGzippedJson
	case ".yaml", ".yml":
		return formatYaml
	default:
		return formatJson
	}
}
