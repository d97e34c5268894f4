// Package models contains the GORM models of the game library.
package models
