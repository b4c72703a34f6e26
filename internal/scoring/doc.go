// Package scoring aggregates findings into category scores, an overall
// score, projected scores, and the ranked top-issue / fast-win lists.
//
// Everything here is a pure function of its inputs. Ordering is made
// explicit everywhere (severity rank, then penalty, then impact, then
// finding ID) so two runs over the same findings always produce
// byte-identical output.
package scoring
