package tests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"ginraidee/spin-cli/internal/domain"
	"ginraidee/spin-cli/internal/mocks"
	"ginraidee/spin-cli/internal/spin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func scenarioCatalog() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: 1, NameEn: "Pad Kra Pao", Category: "thai", Price: 40},
		{ID: 2, NameEn: "Tom Yum Goong", Category: "thai", Price: 200},
		{ID: 3, NameEn: "Katsudon", Category: "japanese", Price: 90},
	}
}

type recorder struct {
	mu    sync.Mutex
	snaps []spin.Snapshot
}

func (r *recorder) add(s spin.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recorder) all() []spin.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]spin.Snapshot(nil), r.snaps...)
}

type sequencerFixture struct {
	picker     *mocks.Picker
	selections *mocks.SelectionRecorder
	exclude    *spin.ExclusionSet
	seq        *spin.Sequencer
	frames     *recorder
}

func newSequencerFixture(t *testing.T) sequencerFixture {
	f := sequencerFixture{
		picker:     mocks.NewPicker(t),
		selections: mocks.NewSelectionRecorder(t),
		exclude:    spin.NewExclusionSet(),
		frames:     &recorder{},
	}
	f.seq = spin.NewSequencer(f.picker, f.selections, f.exclude, spin.DefaultConfig())
	f.seq.SetCatalog(scenarioCatalog())
	f.seq.OnChange(f.frames.add)
	return f
}

func TestSequencer_WaitsForMinimumDuration(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newSequencerFixture(t)
		item := scenarioCatalog()[0]
		f.picker.On("Random", mock.Anything, domain.Filter{}, []int{}, "user-1").Return(item, nil).Once()
		f.selections.On("Select", mock.Anything, "user-1", 1).Return(nil).Once()

		start := time.Now()
		done, err := f.seq.Spin(context.Background(), "user-1")
		require.NoError(t, err)

		synctest.Wait()
		assert.Equal(t, spin.StateShuffling, f.seq.Snapshot().State)

		time.Sleep(1999 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, spin.StateShuffling, f.seq.Snapshot().State)

		<-done
		synctest.Wait()
		assert.GreaterOrEqual(t, time.Since(start), 2000*time.Millisecond)
		snap := f.seq.Snapshot()
		assert.Equal(t, spin.StateResult, snap.State)
		require.NotNil(t, snap.Result)
		assert.Equal(t, 1, snap.Result.ID)
	})
}

func TestSequencer_WaitsForSlowResponse(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newSequencerFixture(t)
		f.picker.On("Random", mock.Anything, mock.Anything, mock.Anything, "user-1").
			After(3*time.Second).Return(scenarioCatalog()[2], nil).Once()
		f.selections.On("Select", mock.Anything, "user-1", 3).Return(nil).Once()

		start := time.Now()
		done, err := f.seq.Spin(context.Background(), "user-1")
		require.NoError(t, err)

		time.Sleep(2500 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, spin.StateShuffling, f.seq.Snapshot().State)

		<-done
		synctest.Wait()
		assert.Equal(t, 3*time.Second, time.Since(start))
		assert.Equal(t, spin.StateResult, f.seq.Snapshot().State)
	})
}

func TestSequencer_IgnoresSpinWhileShuffling(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newSequencerFixture(t)
		f.picker.On("Random", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(scenarioCatalog()[0], nil).Once()
		f.selections.On("Select", mock.Anything, mock.Anything, 1).Return(nil).Once()

		done, err := f.seq.Spin(context.Background(), "user-1")
		require.NoError(t, err)

		_, err = f.seq.Spin(context.Background(), "user-1")
		assert.ErrorIs(t, err, spin.ErrSpinInProgress)

		<-done
		synctest.Wait()
	})
}

func TestSequencer_StaleSpinCannotOverwriteNewerSpin(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newSequencerFixture(t)
		first, second := scenarioCatalog()[1], scenarioCatalog()[2]
		f.picker.On("Random", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			After(5*time.Second).Return(first, nil).Once()
		f.picker.On("Random", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(second, nil).Once()
		f.selections.On("Select", mock.Anything, "user-1", second.ID).Return(nil).Once()

		firstDone, err := f.seq.Spin(context.Background(), "user-1")
		require.NoError(t, err)
		time.Sleep(500 * time.Millisecond)

		f.seq.Cancel()
		<-firstDone
		assert.Equal(t, spin.StateIdle, f.seq.Snapshot().State)

		secondDone, err := f.seq.Spin(context.Background(), "user-1")
		require.NoError(t, err)
		<-secondDone

		// let the abandoned request resolve long after the second spin settled
		time.Sleep(10 * time.Second)
		synctest.Wait()

		snap := f.seq.Snapshot()
		assert.Equal(t, spin.StateResult, snap.State)
		require.NotNil(t, snap.Result)
		assert.Equal(t, second.ID, snap.Result.ID)
		assert.Equal(t, uint64(3), snap.Generation)
	})
}

func TestSequencer_Failures(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(p *mocks.Picker)
		wantMessage string
		wantElapsed time.Duration
	}{
		{
			name: "no candidates",
			setup: func(p *mocks.Picker) {
				p.On("Random", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(domain.MenuItem{}, domain.ErrNoCandidates).Once()
			},
			wantMessage: "no menu matches your filters",
			wantElapsed: 2 * time.Second,
		},
		{
			name: "network failure",
			setup: func(p *mocks.Picker) {
				p.On("Random", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(domain.MenuItem{}, errors.New("dial tcp: connection refused")).Once()
			},
			wantMessage: "could not reach the server, try again",
			wantElapsed: 2 * time.Second,
		},
		{
			name: "request never answers",
			setup: func(p *mocks.Picker) {
				p.On("Random", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Run(func(args mock.Arguments) {
						<-args.Get(0).(context.Context).Done()
					}).
					Return(domain.MenuItem{}, context.DeadlineExceeded).Once()
			},
			wantMessage: "the server took too long to answer, try again",
			wantElapsed: 10 * time.Second,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				f := newSequencerFixture(t)
				testCase.setup(f.picker)

				start := time.Now()
				done, err := f.seq.Spin(context.Background(), "user-1")
				require.NoError(t, err)
				<-done

				assert.Equal(t, testCase.wantElapsed, time.Since(start))
				snap := f.seq.Snapshot()
				assert.Equal(t, spin.StateIdle, snap.State)
				assert.Nil(t, snap.Result)
				assert.Equal(t, testCase.wantMessage, snap.Message)
				synctest.Wait()
			})
		})
	}
}

func TestSequencer_ShuffleTicksDrawFromFilteredCatalog(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newSequencerFixture(t)
		maxPrice := 100.0
		filter := domain.Filter{Categories: []string{"thai", "japanese"}, MaxPrice: &maxPrice}
		f.seq.SetFilter(filter)
		f.exclude.Add(3)
		next := 0
		f.seq.WithRand(func(n int) int {
			next++
			return next % n
		})

		f.picker.On("Random", mock.Anything, filter, []int{3}, "user-1").Return(scenarioCatalog()[0], nil).Once()
		f.selections.On("Select", mock.Anything, "user-1", 1).Return(nil).Once()

		done, err := f.seq.Spin(context.Background(), "user-1")
		require.NoError(t, err)
		<-done
		synctest.Wait()

		ticks := 0
		for _, snap := range f.frames.all() {
			if snap.State == spin.StateShuffling && snap.Displayed != nil {
				ticks++
				assert.Equal(t, 1, snap.Displayed.ID, "only Pad Kra Pao survives the filter")
			}
		}
		assert.GreaterOrEqual(t, ticks, 24)
	})
}

func TestSequencer_SpinAgainFromResult(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newSequencerFixture(t)
		f.picker.On("Random", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(scenarioCatalog()[0], nil).Twice()
		f.selections.On("Select", mock.Anything, "user-1", 1).Return(errors.New("offline")).Twice()

		for i := 0; i < 2; i++ {
			done, err := f.seq.Spin(context.Background(), "user-1")
			require.NoError(t, err)
			<-done
			synctest.Wait()
			assert.Equal(t, spin.StateResult, f.seq.Snapshot().State)
		}
	})
}

func TestSequencer_CancelWhenIdleIsNoop(t *testing.T) {
	f := newSequencerFixture(t)
	f.seq.Cancel()

	snap := f.seq.Snapshot()
	assert.Equal(t, spin.StateIdle, snap.State)
	assert.Equal(t, uint64(0), snap.Generation)
	assert.Empty(t, f.frames.all())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", spin.StateIdle.String())
	assert.Equal(t, "shuffling", spin.StateShuffling.String())
	assert.Equal(t, "result", spin.StateResult.String())
}
