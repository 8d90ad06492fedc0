// Package batch orchestrates multi-household chapter generation: for every
// configured household and day it uploads the matching video, generates
// activity chapters, and persists them under a run record.
package batch
