package config

import "time"

// Base application details
const AppName = "doodle"
const Version = "0.3.0"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "doodle.log"
const DefaultDatabaseFileName = "doodle.db"
const DefaultExportFileName = "doodle.png"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Canvas defaults
const DefaultBrushSize = 3.0
const MinBrushSize = 1.0
const MaxBrushSize = 40.0
const DefaultColor = "#000000"
const DefaultBackground = "#ffffff"
const DefaultHistoryDepth = 50
