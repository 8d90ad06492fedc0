// Command homesight ingests AI-generated chapter annotations for home
// camera footage, consolidates them into an activity feed, and reports on
// activity patterns across households.
package main
