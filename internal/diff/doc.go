// Package diff aligns two sequences and reports what they have in common.
//
// It does not produce diffs; colordiff consumes diffs produced elsewhere. What it needs is alignment:
//   - MatchingBlocks aligns two strings character by character and returns the matching blocks, in the style of Python's difflib.SequenceMatcher (Ratcliff/Obershelp,
//     including its "popular element" junk heuristic for long inputs). The result is ordered, non-overlapping, and always ends with a zero-length sentinel block positioned
//     at the end of both strings.
//   - MatchedLines aligns two slices of lines and returns how many lines the optimal alignment pairs up. It uses a Myers diff without a time limit, so the result is a true
//     longest common subsequence; in particular, making lines "more equal" (ex: stripping trailing whitespace from both sides) can never decrease it.
//
// Offsets and sizes are in runes, never bytes.
package diff
