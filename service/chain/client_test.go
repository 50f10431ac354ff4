package chain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bAbi "github.com/x-xyz/nfttransfer/base/abi"
	bCtx "github.com/x-xyz/nfttransfer/base/ctx"
	"github.com/x-xyz/nfttransfer/domain"
	"github.com/x-xyz/nfttransfer/domain/mocks"
)

func TestCall_ownerOf(t *testing.T) {
	req := require.New(t)
	node := &mocks.EthClientRepo{}
	archive := &mocks.EthClientRepo{}
	c := FromRepos(node, archive)

	contract := common.HexToAddress("0xdcf0de6b17785a143d006e1515a6afd123cde8ba")
	owner := common.HexToAddress("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	ret, err := bAbi.ERC721TokenABI.Methods["ownerOf"].Outputs.Pack(owner)
	req.NoError(err)

	node.On("CallContract", mock.Anything, mock.MatchedBy(func(msg ethereum.CallMsg) bool {
		return *msg.To == contract
	}), (*big.Int)(nil)).Return(ret, nil).Once()
	res, err := c.Call(bCtx.Background(), contract, nil, bAbi.ERC721TokenABI, "ownerOf", big.NewInt(1))
	req.NoError(err)
	req.Equal(owner, res[0])

	archive.On("CallContract", mock.Anything, mock.Anything, big.NewInt(9)).Return(nil, errors.New("missing trie node")).Once()
	_, err = c.Call(bCtx.Background(), contract, big.NewInt(9), bAbi.ERC721TokenABI, "ownerOf", big.NewInt(1))
	var transportErr *domain.TransportError
	req.ErrorAs(err, &transportErr)

	node.AssertExpectations(t)
	archive.AssertExpectations(t)
}

func TestFromRepos_archiveFallback(t *testing.T) {
	node := &mocks.EthClientRepo{}
	c := FromRepos(node, nil)
	require.Equal(t, domain.EthClientRepo(node), c.Archive())
}
