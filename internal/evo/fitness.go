package evo

// MaxPairs is the number of queen pairs on an n-queens board, and the
// fitness of a solved board.
func MaxPairs(n int) int {
	return n * (n - 1) / 2
}

// Conflicts counts attacking pairs. While the permutation invariant holds
// the equal-column branch never fires and diagonals are the only conflict
// source.
func Conflicts(genome []int) int {
	conflicts := 0
	for i := 0; i < len(genome); i++ {
		for j := i + 1; j < len(genome); j++ {
			if genome[i] == genome[j] {
				conflicts++
				continue
			}
			if abs(i-j) == abs(genome[i]-genome[j]) {
				conflicts++
			}
		}
	}
	return conflicts
}

// Fitness scores a genome as the count of non-attacking pairs, in
// [0, MaxPairs(n)]. Pure and deterministic.
func Fitness(genome []int) int {
	return MaxPairs(len(genome)) - Conflicts(genome)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
