/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package version carries build-time identification (release, commit hash,
// author, license) for the demo binary's --version output and Config.New.
package version

import "fmt"

type Version interface {
	GetHeader() string
	GetPackage() string
	GetRootPackagePath() string
	GetDescription() string
	GetBuild() string
	GetRelease() string
	GetAppId() string
	GetAuthor() string
	GetDate() string
	GetLicenseName() string
}

type info struct {
	Package         string
	RootPackagePath string
	Description     string
	Build           string
	Release         string
	AppId           string
	Author          string
	Date            string
	LicenseName     string
}

// New returns a Version built from the given fields. Empty fields are
// acceptable; accessors simply return the empty string.
func New(pkg, rootPackagePath, description, build, release, appId, author, date, licenseName string) Version {
	return &info{
		Package:         pkg,
		RootPackagePath: rootPackagePath,
		Description:     description,
		Build:           build,
		Release:         release,
		AppId:           appId,
		Author:          author,
		Date:            date,
		LicenseName:     licenseName,
	}
}

func (i *info) GetHeader() string {
	return fmt.Sprintf("%s %s (%s)", i.Package, i.Release, i.Build)
}

func (i *info) GetPackage() string         { return i.Package }
func (i *info) GetRootPackagePath() string { return i.RootPackagePath }
func (i *info) GetDescription() string     { return i.Description }
func (i *info) GetBuild() string           { return i.Build }
func (i *info) GetRelease() string         { return i.Release }
func (i *info) GetAppId() string           { return i.AppId }
func (i *info) GetAuthor() string          { return i.Author }
func (i *info) GetDate() string            { return i.Date }
func (i *info) GetLicenseName() string     { return i.LicenseName }
