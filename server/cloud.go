// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"github.com/SoftbearStudios/tileworld/server/cloud/fs"
	"log"
	"time"
)

// Cloud stores debug artifacts somewhere outside the process.
type Cloud interface {
	fmt.Stringer
	UploadTerrainSnapshot(data []byte) error // takes an encoded PNG
	UploadStatus(data []byte) error          // takes encoded JSON
	UpdatePeriod() time.Duration
}

type Offline struct{}

func (offline Offline) String() string {
	return "offline"
}

func (offline Offline) UploadTerrainSnapshot(data []byte) error {
	return nil
}

func (offline Offline) UploadStatus(data []byte) error {
	return nil
}

func (offline Offline) UpdatePeriod() time.Duration {
	return time.Hour
}

// FilesystemCloud uploads to a fs.Filesystem.
type FilesystemCloud struct {
	name       string
	filesystem fs.Filesystem
}

func NewFilesystemCloud(name string, filesystem fs.Filesystem) *FilesystemCloud {
	return &FilesystemCloud{name: name, filesystem: filesystem}
}

func (cloud *FilesystemCloud) String() string {
	return cloud.name
}

func (cloud *FilesystemCloud) UploadTerrainSnapshot(data []byte) error {
	return cloud.filesystem.UploadStaticFile("terrain.png", 60, data)
}

func (cloud *FilesystemCloud) UploadStatus(data []byte) error {
	return cloud.filesystem.UploadStaticFile("status.json", 5, data)
}

func (cloud *FilesystemCloud) UpdatePeriod() time.Duration {
	return 30 * time.Second
}

// Cloud uploads the latest status.
func (h *Hub) Cloud() {
	s := h.snapshot()
	if s == nil {
		return
	}
	if err := h.cloud.UploadStatus(s.status); err != nil {
		log.Println("Error uploading status:", err)
	}
}
