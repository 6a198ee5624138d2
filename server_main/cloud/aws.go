// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/SoftbearStudios/tileworld/server"
	"github.com/SoftbearStudios/tileworld/server/cloud/fs"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/credentials/ec2rolecreds"
	"github.com/aws/aws-sdk-go/aws/ec2metadata"
	"github.com/aws/aws-sdk-go/aws/session"
	"net/http"
	"os"
	"os/user"
	"strings"
	"time"
)

const AWSProfile = "tileworld"

type UserData struct {
	Region string
	Stage  string
}

// New uploads to S3 when running on EC2 with user data naming the region and stage.
func New() (server.Cloud, error) {
	userData, err := loadUserData()
	if err != nil {
		return nil, err
	}
	sess, err := getAWSSession(userData.Region)
	if err != nil {
		return nil, err
	}
	s3, err := fs.NewS3Filesystem(sess, userData.Stage)
	if err != nil {
		return nil, err
	}
	return server.NewFilesystemCloud(fmt.Sprintf("[%s %s]", userData.Region, userData.Stage), s3), nil
}

func getAWSSession(region string) (*session.Session, error) {
	usr, osErr := user.Current()
	if osErr != nil {
		return nil, osErr
	}
	path := fmt.Sprintf("%s/.aws/credentials", usr.HomeDir)
	var creds *credentials.Credentials
	if _, statErr := os.Stat(path); statErr == nil {
		creds = credentials.NewSharedCredentials(path, AWSProfile)
	} else {
		creds = credentials.NewCredentials(&ec2rolecreds.EC2RoleProvider{Client: ec2metadata.New(session.Must(session.NewSession()))})
	}
	return session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: creds,
	})
}

func loadUserData() (*UserData, error) {
	client := http.Client{Timeout: time.Second / 2}
	response, err := client.Get("http://169.254.169.254/latest/user-data/")
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(response.Body); err != nil {
		return nil, err
	}
	return parseUserData(buf.String())
}

// parseUserData reads NAME=value lines, values optionally quoted.
func parseUserData(userData string) (*UserData, error) {
	data := &UserData{}

	for _, variable := range strings.Split(userData, "\n") {
		equalsIndex := strings.IndexRune(variable, '=')
		if equalsIndex == -1 {
			continue
		}
		name := strings.Trim(variable[:equalsIndex], " ")
		value := strings.Trim(variable[equalsIndex+1:], "\" ")

		switch name {
		case "REGION":
			data.Region = value
		case "STAGE":
			data.Stage = value
		}
	}

	if data.Region == "" {
		return nil, errors.New("missing region")
	}
	if data.Stage == "" {
		return nil, errors.New("missing stage")
	}
	return data, nil
}
