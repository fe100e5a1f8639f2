// Package timetable extracts course schedules from published university
// timetable pages and keeps a local, queryable copy of them.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, regexp/).
package timetable
